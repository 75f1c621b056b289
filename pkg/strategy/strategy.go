package strategy

import (
	"errors"
	"math/rand/v2"
	"strings"

	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/aretw0/gymnasion/pkg/lexicon"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrEmptyCatalog is returned when a strategy has to choose from an empty catalog table.
var ErrEmptyCatalog = errors.New("empty catalog")

// Group is the theme a strategy belongs to.
type Group string

const (
	GroupElaboration  Group = "elaboration"
	GroupImitation    Group = "imitation"
	GroupVariation    Group = "variation"
	GroupBacktracking Group = "backtracking"
)

// Strategy names.
const (
	NameAdjectiveQuestion  = "adjective_question"
	NameVerbQuestion       = "verb_question"
	NameObjectQuestion     = "object_question"
	NameRelatedWords       = "related_words"
	NameEntityComment      = "entity_comment"
	NameSuggestQuote       = "suggest_quote"
	NameQuoteStub          = "quote_stub"
	NameAuthorialImitation = "authorial_imitation"
	NameBanishment         = "banishment"
	NameBanishedCheck      = "banished_check"
	NameRepetitionJudgment = "repetition_judgment"
	NameRecallNoun         = "recall_noun"
	NameComparison         = "comparison"
)

// Turn is the input of a strategy invocation.
type Turn struct {
	Text    string
	Session *domain.Session
	Lexicon *lexicon.Lexicon
	Rand    *rand.Rand
}

// Func produces a response for a turn. An empty response with a nil error means
// the strategy does not apply.
type Func func(t *Turn) (string, error)

// Strategy is a named, grouped response strategy.
type Strategy struct {
	Name  string
	Group Group
	Fn    Func
}

// Invoke runs the strategy.
func (s Strategy) Invoke(t *Turn) (string, error) {
	return s.Fn(t)
}

func pick[T any](r *rand.Rand, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyCatalog
	}
	return items[r.IntN(len(items))], nil
}

// sample returns up to n distinct elements of items in random order.
func sample[T any](r *rand.Rand, items []T, n int) []T {
	n = min(n, len(items))
	out := make([]T, 0, n)
	for _, i := range r.Perm(len(items))[:n] {
		out = append(out, items[i])
	}
	return out
}

func title(s string) string {
	return cases.Title(language.English).String(s)
}

func fill(template, key, value string) string {
	return strings.ReplaceAll(template, "{"+key+"}", value)
}
