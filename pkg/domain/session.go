package domain

import (
	"slices"
	"strings"
	"time"
)

// Session is the mutable record of one conversation.
// It is owned by whoever holds the session lock; it is not safe for concurrent use.
type Session struct {
	ID string `json:"id"`

	// Transcript holds every turn's text in order. It is never truncated.
	Transcript []string `json:"transcript"`

	// BanishedWords is an insertion-ordered set of forbidden words.
	BanishedWords []string `json:"banished_words"`

	// UsedQuotes holds the quotes shown since the catalog was last cycled.
	UsedQuotes []Quote `json:"used_quotes"`

	// Boredom counts turns since a history-referencing strategy last fired.
	Boredom int `json:"boredom"`

	// ImitationTarget is the author the writer must imitate; empty when no
	// challenge is open.
	ImitationTarget string `json:"imitation_target,omitempty"`

	// ImitationAttempts is the number of attempts left on the open challenge.
	ImitationAttempts int `json:"imitation_attempts_remaining"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Sealed holds the encrypted session when a store seals state at rest.
	// It is always empty on a session in use.
	Sealed []byte `json:"sealed,omitempty"`
}

// NewSession creates an empty session.
func NewSession(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:            id,
		Transcript:    []string{},
		BanishedWords: []string{},
		UsedQuotes:    []Quote{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Reset returns every field to its initial default. The ID and creation time are kept.
func (s *Session) Reset() {
	s.Transcript = []string{}
	s.BanishedWords = []string{}
	s.UsedQuotes = []Quote{}
	s.Boredom = 0
	s.ImitationTarget = ""
	s.ImitationAttempts = 0
	s.UpdatedAt = time.Now().UTC()
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	c := *s
	c.Transcript = slices.Clone(s.Transcript)
	c.BanishedWords = slices.Clone(s.BanishedWords)
	c.UsedQuotes = slices.Clone(s.UsedQuotes)
	c.Sealed = slices.Clone(s.Sealed)
	return &c
}

// Append records a turn's text in the transcript.
func (s *Session) Append(text string) {
	s.Transcript = append(s.Transcript, text)
	s.UpdatedAt = time.Now().UTC()
}

// WordCount counts whitespace separated words across the whole transcript.
func (s *Session) WordCount() int {
	n := 0
	for _, line := range s.Transcript {
		n += len(strings.Fields(line))
	}
	return n
}

// TranscriptWords returns the whitespace separated words of the transcript, in order.
func (s *Session) TranscriptWords() []string {
	var words []string
	for _, line := range s.Transcript {
		words = append(words, strings.Fields(line)...)
	}
	return words
}

// BumpBoredom increments the boredom counter by one.
func (s *Session) BumpBoredom() {
	s.Boredom++
}

// ResetBoredom sets the boredom counter back to zero.
func (s *Session) ResetBoredom() {
	s.Boredom = 0
}

// Banish forbids a word. Banishing an already banished word is a no-op.
func (s *Session) Banish(word string) {
	if s.IsBanished(word) {
		return
	}
	s.BanishedWords = append(s.BanishedWords, word)
}

// IsBanished reports whether word has been forbidden.
func (s *Session) IsBanished(word string) bool {
	return slices.Contains(s.BanishedWords, word)
}

// QuoteUsed reports whether q was already shown in the current cycle.
func (s *Session) QuoteUsed(q Quote) bool {
	return slices.Contains(s.UsedQuotes, q)
}

// RecordQuote marks q as shown.
func (s *Session) RecordQuote(q Quote) {
	if s.QuoteUsed(q) {
		return
	}
	s.UsedQuotes = append(s.UsedQuotes, q)
}

// ClearQuotes starts a new quote cycle.
func (s *Session) ClearQuotes() {
	s.UsedQuotes = []Quote{}
}

// HasOpenChallenge reports whether an imitation challenge is open.
func (s *Session) HasOpenChallenge() bool {
	return s.ImitationTarget != ""
}

// OpenChallenge starts an imitation challenge. Target and attempts are always set together.
func (s *Session) OpenChallenge(author string, attempts int) {
	if author == "" || attempts <= 0 {
		s.CloseChallenge()
		return
	}
	s.ImitationTarget = author
	s.ImitationAttempts = attempts
}

// CloseChallenge resolves the imitation challenge, clearing target and attempts together.
func (s *Session) CloseChallenge() {
	s.ImitationTarget = ""
	s.ImitationAttempts = 0
}

// Status returns the presentation snapshot of the session.
func (s *Session) Status() Status {
	return Status{
		BanishedWords:   slices.Clone(s.BanishedWords),
		ImitationTarget: s.ImitationTarget,
		WordCount:       s.WordCount(),
		Boredom:         s.Boredom,
	}
}
