package strategy

import (
	"fmt"
	"strings"

	"github.com/aretw0/gymnasion/pkg/lexicon"
)

// AdjectiveQuestion asks what sort of thing a noun of the text is.
func AdjectiveQuestion(t *Turn) (string, error) {
	noun, ok, err := randomNoun(t)
	if !ok || err != nil {
		return "", err
	}

	adjectives := sample(t.Rand, t.Lexicon.AdjectivesFor(noun), 2)
	if len(adjectives) == 0 {
		return "", fmt.Errorf("adjectives for %q: %w", noun, ErrEmptyCatalog)
	}
	second := "Beautiful"
	if len(adjectives) > 1 {
		second = title(adjectives[1])
	}
	return fmt.Sprintf("What sort of %s? %s? %s?", noun, title(adjectives[0]), second), nil
}

// VerbQuestion asks why or what a noun of the text would do.
func VerbQuestion(t *Turn) (string, error) {
	noun, ok, err := randomNoun(t)
	if !ok || err != nil {
		return "", err
	}

	pair, err := pick(t.Rand, t.Lexicon.VerbObjectPairsFor(noun))
	if err != nil {
		return "", fmt.Errorf("verbs for %q: %w", noun, err)
	}
	beginning, err := pick(t.Rand, t.Lexicon.Phrases().VerbBeginnings)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s the %s %s?", beginning, noun, pair.Verb), nil
}

// ObjectQuestion asks what a noun of the text does to its usual object.
func ObjectQuestion(t *Turn) (string, error) {
	noun, ok, err := randomNoun(t)
	if !ok || err != nil {
		return "", err
	}

	pair, err := pick(t.Rand, t.Lexicon.VerbObjectPairsFor(noun))
	if err != nil {
		return "", fmt.Errorf("objects for %q: %w", noun, err)
	}
	beginning, err := pick(t.Rand, t.Lexicon.Phrases().ObjectBeginnings)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s the %s do to the %s?", beginning, noun, pair.Object), nil
}

// RelatedWords suggests words related to a noun of the text.
func RelatedWords(t *Turn) (string, error) {
	noun, ok, err := randomNoun(t)
	if !ok || err != nil {
		return "", err
	}

	related := sample(t.Rand, t.Lexicon.RelatedWordsFor(noun), 2)
	if len(related) == 0 {
		return "", fmt.Errorf("related words for %q: %w", noun, ErrEmptyCatalog)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You've sung me %s...now sing me ", noun)
	for _, w := range related {
		b.WriteString(w)
		b.WriteString("...")
	}
	return b.String(), nil
}

// EntityComment frames a capitalized entity of the text as a person or a place.
func EntityComment(t *Turn) (string, error) {
	entities := lexicon.ExtractEntities(t.Text)
	if len(entities) == 0 {
		return "", nil
	}
	entity, err := pick(t.Rand, entities)
	if err != nil {
		return "", err
	}

	phrases := t.Lexicon.Phrases()
	framings := phrases.PersonFramings
	if lexicon.ClassifyEntity(entity) == lexicon.EntityPlace {
		framings = phrases.PlaceFramings
	}
	framing, err := pick(t.Rand, framings)
	if err != nil {
		return "", err
	}
	return fill(framing, "entity", entity), nil
}

// randomNoun picks one of the vocabulary nouns of the text. ok is false when the
// text has none.
func randomNoun(t *Turn) (noun string, ok bool, err error) {
	nouns := t.Lexicon.ExtractNouns(t.Text)
	if len(nouns) == 0 {
		return "", false, nil
	}
	noun, err = pick(t.Rand, nouns)
	return noun, err == nil, err
}
