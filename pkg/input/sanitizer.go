// Package input cleans user text before it reaches the engine.
package input

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxSize is 4KB, far above any line of verse.
const DefaultMaxSize = 4096

var (
	ErrTooLarge    = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8 = errors.New("input contains invalid UTF-8 sequences")
)

// Sanitizer enforces a size limit, validates UTF-8 and strips control characters.
// The zero value uses DefaultMaxSize.
type Sanitizer struct {
	MaxSize int
}

// New returns a sanitizer with the given limit in bytes. Non-positive limits
// select DefaultMaxSize.
func New(maxSize int) Sanitizer {
	return Sanitizer{MaxSize: maxSize}
}

func (s Sanitizer) limit() int {
	if s.MaxSize > 0 {
		return s.MaxSize
	}
	return DefaultMaxSize
}

// Sanitize returns the cleaned input. Oversized input is rejected, not truncated.
// Newline, tab and carriage return survive; ESC, NUL, BEL and the other control
// characters are removed, which keeps logs and terminals intact.
func (s Sanitizer) Sanitize(text string) (string, error) {
	if limit := s.limit(); len(text) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrTooLarge, len(text), limit)
	}
	if !utf8.ValidString(text) {
		return "", ErrInvalidUTF8
	}

	if strings.IndexFunc(text, isUnsafeControl) < 0 {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if !isUnsafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// Sanitize cleans text with the default limit.
func Sanitize(text string) (string, error) {
	return Sanitizer{}.Sanitize(text)
}

func isUnsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}
