package lexicon

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultKey is the lookup key used for nouns with no entry of their own.
const DefaultKey = "default"

//go:embed catalog.yaml
var defaultCatalog []byte

// ErrMissingDefault is returned when a lookup table has no DefaultKey entry.
var ErrMissingDefault = errors.New("catalog table has no default entry")

// VerbObject is a verb and the object a noun might perform it on.
type VerbObject struct {
	Verb   string `mapstructure:"verb"`
	Object string `mapstructure:"object"`
}

// Phrases holds the fixed phrasing tables used to format responses.
// Entries containing {noun} or {entity} are templates.
type Phrases struct {
	VerbBeginnings      []string `mapstructure:"verb_beginnings"`
	ObjectBeginnings    []string `mapstructure:"object_beginnings"`
	QuotePrefixes       []string `mapstructure:"quote_prefixes"`
	StubPrefixes        []string `mapstructure:"stub_prefixes"`
	KinWords            []string `mapstructure:"kin_words"`
	Scoldings           []string `mapstructure:"scoldings"`
	Praise              []string `mapstructure:"praise"`
	WearyBeginnings     []string `mapstructure:"weary_beginnings"`
	RecallEndings       []string `mapstructure:"recall_endings"`
	ComparisonQuestions []string `mapstructure:"comparison_questions"`
	PersonFramings      []string `mapstructure:"person_framings"`
	PlaceFramings       []string `mapstructure:"place_framings"`
}

// Catalog is the decoded form of a catalog document.
type Catalog struct {
	Nouns           []string                `mapstructure:"nouns"`
	RecallableNouns []string                `mapstructure:"recallable_nouns"`
	ComparableNouns []string                `mapstructure:"comparable_nouns"`
	Adjectives      map[string][]string     `mapstructure:"adjectives"`
	VerbObjects     map[string][]VerbObject `mapstructure:"verb_objects"`
	RelatedWords    map[string][]string     `mapstructure:"related_words"`
	Quotes          []domain.Quote          `mapstructure:"quotes"`
	Authors         []string                `mapstructure:"authors"`
	QuoteStubs      []string                `mapstructure:"quote_stubs"`
	Phrases         Phrases                 `mapstructure:"phrases"`
}

// Validate checks that every lookup table can answer for unknown nouns.
func (c *Catalog) Validate() error {
	if _, ok := c.Adjectives[DefaultKey]; !ok {
		return fmt.Errorf("adjectives: %w", ErrMissingDefault)
	}
	if _, ok := c.VerbObjects[DefaultKey]; !ok {
		return fmt.Errorf("verb_objects: %w", ErrMissingDefault)
	}
	if _, ok := c.RelatedWords[DefaultKey]; !ok {
		return fmt.Errorf("related_words: %w", ErrMissingDefault)
	}
	return nil
}

// Lexicon is the immutable, read-only view over a catalog.
// Every accessor returns a copy, so a Lexicon is safe for concurrent use.
type Lexicon struct {
	catalog    Catalog
	nouns      map[string]struct{}
	recallable map[string]struct{}
	comparable map[string]struct{}
}

// Default returns the lexicon built from the embedded catalog.
// It panics if the embedded document is invalid.
func Default() *Lexicon {
	lex, err := Parse(defaultCatalog, ".yaml")
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return lex
}

// Load reads a catalog document (YAML or JSON, chosen by extension) from disk.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data, filepath.Ext(path))
}

// Parse decodes a catalog document. ext selects the decoder: ".json" for JSON,
// anything else for YAML.
func Parse(data []byte, ext string) (*Lexicon, error) {
	var raw map[string]any
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse catalog json: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse catalog yaml: %w", err)
		}
	}

	var cat Catalog
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &cat,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	return New(cat)
}

// New builds a lexicon from an in-memory catalog. The catalog is deep-copied,
// so later changes to cat do not reach the lexicon.
func New(cat Catalog) (*Lexicon, error) {
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &Lexicon{
		catalog:    cat.Clone(),
		nouns:      toSet(cat.Nouns),
		recallable: toSet(cat.RecallableNouns),
		comparable: toSet(cat.ComparableNouns),
	}, nil
}

// Clone returns a deep copy of the catalog.
func (c Catalog) Clone() Catalog {
	return Catalog{
		Nouns:           slices.Clone(c.Nouns),
		RecallableNouns: slices.Clone(c.RecallableNouns),
		ComparableNouns: slices.Clone(c.ComparableNouns),
		Adjectives:      cloneTable(c.Adjectives),
		VerbObjects:     cloneTable(c.VerbObjects),
		RelatedWords:    cloneTable(c.RelatedWords),
		Quotes:          slices.Clone(c.Quotes),
		Authors:         slices.Clone(c.Authors),
		QuoteStubs:      slices.Clone(c.QuoteStubs),
		Phrases:         c.Phrases.clone(),
	}
}

func cloneTable[T any](table map[string][]T) map[string][]T {
	out := maps.Clone(table)
	for k, v := range out {
		out[k] = slices.Clone(v)
	}
	return out
}

func (p Phrases) clone() Phrases {
	return Phrases{
		VerbBeginnings:      slices.Clone(p.VerbBeginnings),
		ObjectBeginnings:    slices.Clone(p.ObjectBeginnings),
		QuotePrefixes:       slices.Clone(p.QuotePrefixes),
		StubPrefixes:        slices.Clone(p.StubPrefixes),
		KinWords:            slices.Clone(p.KinWords),
		Scoldings:           slices.Clone(p.Scoldings),
		Praise:              slices.Clone(p.Praise),
		WearyBeginnings:     slices.Clone(p.WearyBeginnings),
		RecallEndings:       slices.Clone(p.RecallEndings),
		ComparisonQuestions: slices.Clone(p.ComparisonQuestions),
		PersonFramings:      slices.Clone(p.PersonFramings),
		PlaceFramings:       slices.Clone(p.PlaceFramings),
	}
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

func lookup[T any](table map[string][]T, noun string) []T {
	if v, ok := table[noun]; ok {
		return slices.Clone(v)
	}
	return slices.Clone(table[DefaultKey])
}

// AdjectivesFor returns the adjectives for noun, or the default list.
func (l *Lexicon) AdjectivesFor(noun string) []string {
	return lookup(l.catalog.Adjectives, noun)
}

// VerbObjectPairsFor returns the (verb, object) pairs for noun, or the default list.
func (l *Lexicon) VerbObjectPairsFor(noun string) []VerbObject {
	return lookup(l.catalog.VerbObjects, noun)
}

// RelatedWordsFor returns words related to noun, or the generic default.
func (l *Lexicon) RelatedWordsFor(noun string) []string {
	return lookup(l.catalog.RelatedWords, noun)
}

// Quotes returns the full quote catalog in order.
func (l *Lexicon) Quotes() []domain.Quote {
	return slices.Clone(l.catalog.Quotes)
}

// Authors returns the authors available for imitation challenges.
func (l *Lexicon) Authors() []string {
	return slices.Clone(l.catalog.Authors)
}

// QuoteStubs returns the unfinished quotations offered for completion.
func (l *Lexicon) QuoteStubs() []string {
	return slices.Clone(l.catalog.QuoteStubs)
}

// Phrases returns a copy of the phrasing tables.
func (l *Lexicon) Phrases() Phrases {
	return l.catalog.Phrases.clone()
}

// IsKnownNoun reports whether word belongs to the closed noun vocabulary.
func (l *Lexicon) IsKnownNoun(word string) bool {
	_, ok := l.nouns[strings.ToLower(word)]
	return ok
}

// IsRecallableNoun reports whether word may be recalled from the transcript.
func (l *Lexicon) IsRecallableNoun(word string) bool {
	_, ok := l.recallable[strings.ToLower(word)]
	return ok
}

// IsComparableNoun reports whether word may be drawn from the transcript for a comparison.
func (l *Lexicon) IsComparableNoun(word string) bool {
	_, ok := l.comparable[strings.ToLower(word)]
	return ok
}
