package strategy

import (
	"fmt"
	"strings"

	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/aretw0/gymnasion/pkg/lexicon"
)

// Banishment forbids a noun of the text that is not banished yet.
func Banishment(t *Turn) (string, error) {
	var candidates []string
	for _, n := range t.Lexicon.ExtractNouns(t.Text) {
		if !t.Session.IsBanished(n) {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return "", nil
	}

	word, err := pick(t.Rand, candidates)
	if err != nil {
		return "", err
	}
	kin, err := pick(t.Rand, t.Lexicon.Phrases().KinWords)
	if err != nil {
		return "", err
	}

	t.Session.Banish(word)
	return fmt.Sprintf("I forbid you from singing of %s or this word's %s.", word, kin), nil
}

// BanishedCheck scolds the writer for using a banished word. It names the first
// banished word of the text.
func BanishedCheck(t *Turn) (string, error) {
	if len(t.Session.BanishedWords) == 0 {
		return "", nil
	}
	for _, word := range lexicon.Tokens(t.Text) {
		if !t.Session.IsBanished(word) {
			continue
		}
		scolding, err := pick(t.Rand, t.Lexicon.Phrases().Scoldings)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s\nI said not to sing of %s...", scolding, word), nil
	}
	return "", nil
}

// RepetitionJudgment calls out first-person openings once the writer is getting
// repetitive, and resets boredom when it does.
func RepetitionJudgment(t *Turn) (string, error) {
	if t.Session.Boredom < domain.RepetitionBoredom {
		return "", nil
	}
	words := strings.Fields(t.Text)
	if len(words) <= 3 || strings.ToLower(words[0]) != "i" {
		return "", nil
	}
	t.Session.ResetBoredom()
	return "Eschew this tired syntax:\n   \"" + strings.Join(words[:4], " ") + "...\"", nil
}
