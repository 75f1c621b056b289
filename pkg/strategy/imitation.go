package strategy

import (
	"fmt"

	"github.com/aretw0/gymnasion/pkg/domain"
)

// SuggestQuote shows a quote the session has not seen in the current cycle.
// Once every catalog quote has been shown the cycle starts over.
func SuggestQuote(t *Turn) (string, error) {
	quotes := t.Lexicon.Quotes()
	if len(quotes) == 0 {
		return "", nil
	}

	available := unusedQuotes(t.Session, quotes)
	if len(available) == 0 {
		t.Session.ClearQuotes()
		available = quotes
	}

	q, err := pick(t.Rand, available)
	if err != nil {
		return "", err
	}
	prefix, err := pick(t.Rand, t.Lexicon.Phrases().QuotePrefixes)
	if err != nil {
		return "", err
	}

	t.Session.RecordQuote(q)
	return fmt.Sprintf("%s:\n\"%s\"\n   (%s)", prefix, q.Text, q.Author), nil
}

func unusedQuotes(s *domain.Session, quotes []domain.Quote) []domain.Quote {
	var out []domain.Quote
	for _, q := range quotes {
		if !s.QuoteUsed(q) {
			out = append(out, q)
		}
	}
	return out
}

// QuoteStub offers the beginning of a quotation to complete. It is stateless.
func QuoteStub(t *Turn) (string, error) {
	prefix, err := pick(t.Rand, t.Lexicon.Phrases().StubPrefixes)
	if err != nil {
		return "", err
	}
	stub, err := pick(t.Rand, t.Lexicon.QuoteStubs())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s\n\"%s...\"", prefix, stub), nil
}

// AuthorialImitation drives the imitation challenge.
//
// With no open challenge it opens one against a random author. With an open
// challenge every invocation consumes an attempt; the challenge resolves when the
// attempts run out or when a success roll passes.
func AuthorialImitation(t *Turn) (string, error) {
	s := t.Session
	if !s.HasOpenChallenge() {
		author, err := pick(t.Rand, t.Lexicon.Authors())
		if err != nil {
			return "", err
		}
		s.OpenChallenge(author, domain.ImitationAttempts)
		return fmt.Sprintf("Try that again, in the style of %s.", title(author)), nil
	}

	remaining := s.ImitationAttempts - 1
	if remaining <= 0 || t.Rand.Float64() < domain.ImitationSuccessChance {
		praise, err := pick(t.Rand, t.Lexicon.Phrases().Praise)
		if err != nil {
			return "", err
		}
		s.CloseChallenge()
		return praise, nil
	}

	s.ImitationAttempts = remaining
	return fmt.Sprintf("No, not that style --- imitate %s.", title(s.ImitationTarget)), nil
}
