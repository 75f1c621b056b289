package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidSessionID is returned when a session ID is empty or unusable as a storage key.
var ErrInvalidSessionID = errors.New("invalid session id")

// MaxSessionIDLength bounds session IDs so they stay usable as file names and keys.
const MaxSessionIDLength = 128

// ValidateSessionID reports whether id may be used as a session key.
// IDs are 1 to MaxSessionIDLength ASCII letters, digits, '-', '_' or '.', and
// may not start with '.'.
func ValidateSessionID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSessionID)
	}
	if len(id) > MaxSessionIDLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidSessionID, MaxSessionIDLength)
	}
	if id[0] == '.' {
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidSessionID, id)
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidSessionID, id, c)
		}
	}
	return nil
}
