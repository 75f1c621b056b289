package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/stretchr/testify/assert"
)

type nopStore struct{}

func (nopStore) Save(context.Context, *domain.Session) error { return nil }
func (nopStore) Load(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}
func (nopStore) Delete(context.Context, string) error   { return nil }
func (nopStore) List(context.Context) ([]string, error) { return nil, nil }

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(nopStore{})
	ctx := context.Background()

	for i := range 10000 {
		sid := fmt.Sprintf("session-%d", i)
		_, _ = mgr.Update(ctx, sid, func(context.Context, *domain.Session) error { return nil })
		_ = mgr.Delete(ctx, sid)
	}

	assert.Zero(t, mgr.activeLocks(), "lock entries must be released once unused")
}
