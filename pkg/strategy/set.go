package strategy

import (
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/gymnasion/pkg/domain"
)

// Set holds the registered strategies and the pool bound to each mode.
// Safe for concurrent use.
type Set struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
	order      []string
	pools      map[domain.Mode][]string
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{
		strategies: make(map[string]Strategy),
		pools:      make(map[domain.Mode][]string),
	}
}

// Register adds a strategy to the set.
// If a strategy with the same name exists, it is overwritten.
func (s *Set) Register(st Strategy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.strategies[st.Name]; !exists {
		s.order = append(s.order, st.Name)
	}
	s.strategies[st.Name] = st
}

// Bind sets the pool of a mode. Every name must already be registered.
func (s *Set) Bind(mode domain.Mode, names ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		if _, ok := s.strategies[name]; !ok {
			return fmt.Errorf("strategy not found: %s", name)
		}
	}
	s.pools[mode] = slices.Clone(names)
	return nil
}

// Lookup returns a registered strategy by name.
func (s *Set) Lookup(name string) (Strategy, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.strategies[name]
	return st, ok
}

// Names returns the registered strategy names in registration order.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// Pool returns a fresh copy of the pool bound to mode. Unbound modes fall back to
// the pool of domain.DefaultMode.
func (s *Set) Pool(mode domain.Mode) []Strategy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names, ok := s.pools[mode]
	if !ok {
		names = s.pools[domain.DefaultMode]
	}
	pool := make([]Strategy, 0, len(names))
	for _, name := range names {
		pool = append(pool, s.strategies[name])
	}
	return pool
}

// Allows reports whether the pool of mode contains the named strategy.
func (s *Set) Allows(mode domain.Mode, name string) bool {
	for _, st := range s.Pool(mode) {
		if st.Name == name {
			return true
		}
	}
	return false
}

// Catalog returns every built-in strategy in presentation order.
func Catalog() []Strategy {
	return []Strategy{
		{Name: NameAdjectiveQuestion, Group: GroupElaboration, Fn: AdjectiveQuestion},
		{Name: NameVerbQuestion, Group: GroupElaboration, Fn: VerbQuestion},
		{Name: NameObjectQuestion, Group: GroupElaboration, Fn: ObjectQuestion},
		{Name: NameRelatedWords, Group: GroupElaboration, Fn: RelatedWords},
		{Name: NameEntityComment, Group: GroupElaboration, Fn: EntityComment},
		{Name: NameSuggestQuote, Group: GroupImitation, Fn: SuggestQuote},
		{Name: NameQuoteStub, Group: GroupImitation, Fn: QuoteStub},
		{Name: NameAuthorialImitation, Group: GroupImitation, Fn: AuthorialImitation},
		{Name: NameBanishment, Group: GroupVariation, Fn: Banishment},
		{Name: NameBanishedCheck, Group: GroupVariation, Fn: BanishedCheck},
		{Name: NameRepetitionJudgment, Group: GroupVariation, Fn: RepetitionJudgment},
		{Name: NameRecallNoun, Group: GroupBacktracking, Fn: RecallNoun},
		{Name: NameComparison, Group: GroupBacktracking, Fn: Comparison},
	}
}

var groupModes = map[Group]domain.Mode{
	GroupElaboration:  domain.ModeElaboration,
	GroupImitation:    domain.ModeImitation,
	GroupVariation:    domain.ModeVariation,
	GroupBacktracking: domain.ModeBacktracking,
}

// Default returns the built-in set: one mode per group, and the mixed mode bound
// to the union of all groups.
func Default() *Set {
	set := NewSet()
	byMode := make(map[domain.Mode][]string)
	var all []string
	for _, st := range Catalog() {
		set.Register(st)
		mode := groupModes[st.Group]
		byMode[mode] = append(byMode[mode], st.Name)
		all = append(all, st.Name)
	}
	for mode, names := range byMode {
		// Names come from the set itself.
		_ = set.Bind(mode, names...)
	}
	_ = set.Bind(domain.ModeMixed, all...)
	return set
}
