package strategy_test

import (
	"testing"

	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/aretw0/gymnasion/pkg/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poolNames(pool []strategy.Strategy) []string {
	names := make([]string, 0, len(pool))
	for _, st := range pool {
		names = append(names, st.Name)
	}
	return names
}

func TestDefaultSet_Modes(t *testing.T) {
	set := strategy.Default()

	assert.Len(t, set.Names(), 13)
	assert.Equal(t, []string{
		strategy.NameAdjectiveQuestion,
		strategy.NameVerbQuestion,
		strategy.NameObjectQuestion,
		strategy.NameRelatedWords,
		strategy.NameEntityComment,
	}, poolNames(set.Pool(domain.ModeElaboration)))
	assert.Equal(t, []string{
		strategy.NameSuggestQuote,
		strategy.NameQuoteStub,
		strategy.NameAuthorialImitation,
	}, poolNames(set.Pool(domain.ModeImitation)))
	assert.Equal(t, []string{
		strategy.NameBanishment,
		strategy.NameBanishedCheck,
		strategy.NameRepetitionJudgment,
	}, poolNames(set.Pool(domain.ModeVariation)))
	assert.Equal(t, []string{
		strategy.NameRecallNoun,
		strategy.NameComparison,
	}, poolNames(set.Pool(domain.ModeBacktracking)))

	// Mixed is the union of every group.
	assert.ElementsMatch(t, set.Names(), poolNames(set.Pool(domain.ModeMixed)))
}

func TestSet_UnknownModeFallsBackToMixed(t *testing.T) {
	set := strategy.Default()
	assert.Equal(t, poolNames(set.Pool(domain.ModeMixed)), poolNames(set.Pool(domain.Mode("freestyle"))))
}

func TestSet_Allows(t *testing.T) {
	set := strategy.Default()
	assert.True(t, set.Allows(domain.ModeImitation, strategy.NameAuthorialImitation))
	assert.True(t, set.Allows(domain.ModeMixed, strategy.NameAuthorialImitation))
	assert.False(t, set.Allows(domain.ModeElaboration, strategy.NameAuthorialImitation))
	assert.False(t, set.Allows(domain.ModeBacktracking, strategy.NameAuthorialImitation))
}

func TestSet_PoolIsACopy(t *testing.T) {
	set := strategy.Default()
	pool := set.Pool(domain.ModeVariation)
	pool[0] = strategy.Strategy{Name: "mutated"}

	assert.Equal(t, strategy.NameBanishment, set.Pool(domain.ModeVariation)[0].Name)
}

func TestSet_RegisterAndBind(t *testing.T) {
	set := strategy.NewSet()
	echo := strategy.Strategy{Name: "echo", Fn: func(t *strategy.Turn) (string, error) { return t.Text, nil }}
	set.Register(echo)
	set.Register(echo)

	assert.Equal(t, []string{"echo"}, set.Names())
	require.NoError(t, set.Bind(domain.ModeMixed, "echo"))
	assert.Error(t, set.Bind(domain.ModeMixed, "missing"))

	st, ok := set.Lookup("echo")
	require.True(t, ok)
	resp, err := st.Invoke(&strategy.Turn{Text: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp)
}
