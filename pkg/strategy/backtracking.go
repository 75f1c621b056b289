package strategy

import (
	"fmt"

	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/aretw0/gymnasion/pkg/lexicon"
)

// RecallNoun sends a bored writer back to a noun from earlier in the transcript.
func RecallNoun(t *Turn) (string, error) {
	if t.Session.Boredom < domain.RecallBoredom {
		return "", nil
	}
	nouns := transcriptNouns(t.Session, t.Lexicon.IsRecallableNoun)
	if len(nouns) == 0 {
		return "", nil
	}

	phrases := t.Lexicon.Phrases()
	old, err := pick(t.Rand, nouns)
	if err != nil {
		return "", err
	}
	beginning, err := pick(t.Rand, phrases.WearyBeginnings)
	if err != nil {
		return "", err
	}
	ending, err := pick(t.Rand, phrases.RecallEndings)
	if err != nil {
		return "", err
	}

	t.Session.ResetBoredom()
	return fmt.Sprintf("%s %s.", beginning, fill(ending, "noun", old)), nil
}

// Comparison asks a bored writer to weigh a noun from the transcript against a
// noun of the current text.
func Comparison(t *Turn) (string, error) {
	if t.Session.Boredom < domain.RecallBoredom {
		return "", nil
	}
	current := t.Lexicon.ExtractNouns(t.Text)
	old := transcriptNouns(t.Session, t.Lexicon.IsComparableNoun)
	if len(current) == 0 || len(old) == 0 {
		return "", nil
	}

	currentNoun, err := pick(t.Rand, current)
	if err != nil {
		return "", err
	}
	oldNoun, err := pick(t.Rand, old)
	if err != nil {
		return "", err
	}
	question, err := pick(t.Rand, t.Lexicon.Phrases().ComparisonQuestions)
	if err != nil {
		return "", err
	}

	t.Session.ResetBoredom()
	return fmt.Sprintf("Now compare the %s to the %s. %s", oldNoun, currentNoun, question), nil
}

func transcriptNouns(s *domain.Session, keep func(string) bool) []string {
	var nouns []string
	for _, raw := range s.TranscriptWords() {
		if w := lexicon.Normalize(raw); w != "" && keep(w) {
			nouns = append(nouns, w)
		}
	}
	return nouns
}
