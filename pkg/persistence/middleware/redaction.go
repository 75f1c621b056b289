package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/aretw0/gymnasion/pkg/ports"
)

// Mask replaces redacted text in stored transcripts.
const Mask = "***"

// Each word of a match is masked on its own, so word counts survive a reload.
var maskedWord = regexp.MustCompile(`\S+`)

func mask(match string) string {
	return maskedWord.ReplaceAllString(match, Mask)
}

type redactionMiddleware struct {
	next     ports.SessionStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware creates a middleware that masks every match of the
// patterns inside stored transcript lines (e-mail addresses, phone numbers).
// The session being saved is not modified.
func NewRedactionMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, 0, len(patternStrings))
	for _, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redaction pattern %q: %w", p, err)
		}
		patterns = append(patterns, re)
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &redactionMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactionMiddleware) Save(ctx context.Context, sess *domain.Session) error {
	cloned := sess.Clone()
	for i, line := range cloned.Transcript {
		for _, p := range m.patterns {
			line = p.ReplaceAllStringFunc(line, mask)
		}
		cloned.Transcript[i] = line
	}
	return m.next.Save(ctx, cloned)
}

func (m *redactionMiddleware) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *redactionMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *redactionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
