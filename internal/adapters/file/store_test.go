package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/gymnasion/internal/adapters/file"
	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/aretw0/gymnasion/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements SessionStore
var _ ports.SessionStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_WritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	sess := domain.NewSession("session-1")
	sess.Append("the river at night")
	require.NoError(t, store.Save(ctx, sess))

	data, err := os.ReadFile(filepath.Join(dir, "session-1.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"transcript"`)
	assert.Contains(t, string(data), "the river at night")

	require.NoError(t, store.Delete(ctx, "session-1"))
	_, err = os.Stat(filepath.Join(dir, "session-1.json"))
	assert.True(t, os.IsNotExist(err), "file should not exist after delete")
}

func TestFileStore_ListIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	ids := []string{"s1", "s2", "s3"}
	for _, id := range ids {
		require.NoError(t, store.Save(ctx, domain.NewSession(id)))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "garbage.txt"), []byte("garbage"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tmp-s4-123.json"), []byte("{}"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0o755))

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, ids, list)
}

func TestFileStore_ListMissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "missing"))
	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFileStore_RejectsPathTraversal(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	assert.ErrorIs(t, store.Save(ctx, domain.NewSession("../escape")), domain.ErrInvalidSessionID)
	_, err := store.Load(ctx, "../escape")
	assert.ErrorIs(t, err, domain.ErrInvalidSessionID)
	assert.ErrorIs(t, store.Delete(ctx, ""), domain.ErrInvalidSessionID)
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))

	_, err := file.New(dir).Load(context.Background(), "broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestFileStore_TTL(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	now := time.Now()
	store := file.New(dir,
		file.WithTTL(time.Hour),
		file.WithClock(func() time.Time { return now }),
	)

	require.NoError(t, store.Save(ctx, domain.NewSession("idle")))
	require.NoError(t, store.Save(ctx, domain.NewSession("busy")))
	stale := now.Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "idle.json"), stale, stale))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"busy"}, ids)
	_, err = os.Stat(filepath.Join(dir, "idle.json"))
	assert.True(t, os.IsNotExist(err), "expired file is removed")

	now = now.Add(2 * time.Hour)
	_, err = store.Load(ctx, "busy")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
