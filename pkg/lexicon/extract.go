package lexicon

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// EntityKind is the framing used when commenting on a capitalized entity.
type EntityKind string

const (
	EntityPerson EntityKind = "person"
	EntityPlace  EntityKind = "place"
)

var placeSuffixes = []string{"land", "ton", "ville", "berg", "burg"}

// Tokens lower-cases text, splits it on whitespace and trims surrounding
// punctuation from each token. Tokens that are pure punctuation are dropped.
func Tokens(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := Normalize(f); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// Normalize lower-cases a single word and trims its surrounding punctuation.
func Normalize(word string) string {
	return trimPunct(strings.ToLower(word))
}

func trimPunct(s string) string {
	return strings.TrimFunc(s, unicode.IsPunct)
}

// ExtractNouns returns the vocabulary nouns of text in input order.
// Duplicates are preserved.
func (l *Lexicon) ExtractNouns(text string) []string {
	var nouns []string
	for _, t := range Tokens(text) {
		if l.IsKnownNoun(t) {
			nouns = append(nouns, t)
		}
	}
	return nouns
}

// ExtractEntities returns the tokens of text longer than two characters whose
// first character is upper case, in input order. Surrounding punctuation is trimmed.
func ExtractEntities(text string) []string {
	var entities []string
	for _, f := range strings.Fields(text) {
		f = trimPunct(f)
		if utf8.RuneCountInString(f) <= 2 {
			continue
		}
		first, _ := utf8.DecodeRuneInString(f)
		if unicode.IsUpper(first) {
			entities = append(entities, f)
		}
	}
	return entities
}

// ClassifyEntity guesses whether entity names a place (by suffix) or a person.
func ClassifyEntity(entity string) EntityKind {
	lower := strings.ToLower(entity)
	for _, suffix := range placeSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return EntityPlace
		}
	}
	return EntityPerson
}
