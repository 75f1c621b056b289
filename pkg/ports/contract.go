package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		sess := domain.NewSession(sessionID)
		sess.Append("A wolf hunts in the moonlight")
		sess.Boredom = 2
		sess.Banish("wolf")
		sess.RecordQuote(domain.Quote{Text: "Hope is the thing with feathers", Author: "Emily Dickinson"})
		sess.OpenChallenge("yeats", domain.ImitationAttempts)

		require.NoError(t, store.Save(ctx, sess), "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.ID)
		assert.Equal(t, sess.Transcript, loaded.Transcript)
		assert.Equal(t, []string{"wolf"}, loaded.BanishedWords)
		assert.Equal(t, sess.UsedQuotes, loaded.UsedQuotes)
		assert.Equal(t, 2, loaded.Boredom)
		assert.Equal(t, "yeats", loaded.ImitationTarget)
		assert.Equal(t, domain.ImitationAttempts, loaded.ImitationAttempts)
		assert.Equal(t, 6, loaded.WordCount())
	})

	t.Run("Load returns an isolated copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Append("mutated after load")
		loaded.Banish("sea")

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Len(t, again.Transcript, 1)
		assert.False(t, again.IsBanished("sea"))
	})

	t.Run("Save overwrites", func(t *testing.T) {
		sess := domain.NewSession(sessionID)
		require.NoError(t, store.Save(ctx, sess))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Empty(t, loaded.Transcript)
		assert.Empty(t, loaded.BanishedWords)
		assert.False(t, loaded.HasOpenChallenge())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.NewSession(sessionID)))

		require.NoError(t, store.Delete(ctx, sessionID), "Delete should not return error")

		_, err := store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Save(ctx, domain.NewSession(id1)))
		require.NoError(t, store.Save(ctx, domain.NewSession(id2)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
		assert.NotContains(t, sessions, sessionID)
	})
}
