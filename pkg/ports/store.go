package ports

import (
	"context"

	"github.com/aretw0/gymnasion/pkg/domain"
)

// SessionStore persists per-session state between turns.
type SessionStore interface {
	// Save persists the session under its ID.
	Save(ctx context.Context, sess *domain.Session) error

	// Load retrieves the session for a given ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of the stored sessions, in no particular order.
	List(ctx context.Context) ([]string, error)
}
