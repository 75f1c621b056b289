package runtime_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/gymnasion/internal/runtime"
	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/aretw0/gymnasion/pkg/lexicon"
	"github.com/aretw0/gymnasion/pkg/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDispatcher(seed uint64, opts ...runtime.Option) *runtime.Dispatcher {
	opts = append([]runtime.Option{runtime.WithSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}, opts...)
	return runtime.NewDispatcher(strategy.Default(), lexicon.Default(), opts...)
}

func customSet(t *testing.T, strategies ...strategy.Strategy) *strategy.Set {
	t.Helper()
	set := strategy.NewSet()
	var names []string
	for _, st := range strategies {
		set.Register(st)
		names = append(names, st.Name)
	}
	require.NoError(t, set.Bind(domain.ModeMixed, names...))
	return set
}

func TestDispatch_EmptyInputLeavesStateUntouched(t *testing.T) {
	d := newDispatcher(1)
	sess := domain.NewSession("s1")
	sess.Append("the wolf")
	sess.Banish("wolf")
	sess.Boredom = 2
	before := sess.Clone()

	for _, text := range []string{"", "   ", "\t\n"} {
		out := d.Dispatch(context.Background(), sess, text, domain.ModeMixed)
		assert.Equal(t, domain.EmptyInputPrompt, out.Response)
		assert.True(t, out.Skipped)
	}
	assert.Equal(t, before, sess)
}

func TestDispatch_WolfInMoonlight(t *testing.T) {
	for seed := range uint64(20) {
		d := newDispatcher(seed)
		sess := domain.NewSession("s1")

		out := d.Dispatch(context.Background(), sess, "A wolf hunts in the moonlight", domain.ModeElaboration)

		assert.NotEmpty(t, out.Response)
		assert.NotEqual(t, domain.FallbackResponse, out.Response, "a known noun always gives elaboration something to say")
		assert.Equal(t, 6, sess.WordCount())
		assert.Equal(t, 1, sess.Boredom)
	}
}

func TestDispatch_BanishedWordWinsInEveryMode(t *testing.T) {
	for _, mode := range domain.Modes() {
		t.Run(string(mode), func(t *testing.T) {
			for seed := range uint64(25) {
				d := newDispatcher(seed)
				sess := domain.NewSession("s1")
				sess.Banish("forest")

				out := d.Dispatch(context.Background(), sess, "I walk into the forest.", mode)

				assert.Equal(t, strategy.NameBanishedCheck, out.Strategy)
				assert.True(t, out.Priority)
				assert.True(t, strings.HasSuffix(out.Response, "I said not to sing of forest..."), out.Response)
			}
		})
	}
}

func TestDispatch_OpenChallengeTakesPriority(t *testing.T) {
	ctx := context.Background()

	t.Run("modes with imitation follow up", func(t *testing.T) {
		for _, mode := range []domain.Mode{domain.ModeImitation, domain.ModeMixed} {
			d := newDispatcher(3)
			sess := domain.NewSession("s1")
			sess.OpenChallenge("yeats", domain.ImitationAttempts)

			out := d.Dispatch(ctx, sess, "the sea and the tower", mode)

			assert.Equal(t, strategy.NameAuthorialImitation, out.Strategy)
			assert.True(t, out.Priority)
		}
	})

	t.Run("other modes leave the challenge alone", func(t *testing.T) {
		for seed := range uint64(10) {
			d := newDispatcher(seed)
			sess := domain.NewSession("s1")
			sess.OpenChallenge("yeats", domain.ImitationAttempts)

			out := d.Dispatch(ctx, sess, "the sea and the tower", domain.ModeElaboration)

			assert.NotEqual(t, strategy.NameAuthorialImitation, out.Strategy)
			assert.Equal(t, "yeats", sess.ImitationTarget)
			assert.Equal(t, domain.ImitationAttempts, sess.ImitationAttempts)
		}
	})
}

func TestDispatch_ChallengeResolvesWithinThreeTurns(t *testing.T) {
	for seed := range uint64(50) {
		d := newDispatcher(seed)
		sess := domain.NewSession("s1")
		sess.OpenChallenge("frost", domain.ImitationAttempts)

		resolved := false
		for range domain.ImitationAttempts {
			out := d.Dispatch(context.Background(), sess, "a line of verse", domain.ModeMixed)
			require.Equal(t, strategy.NameAuthorialImitation, out.Strategy)
			if !sess.HasOpenChallenge() {
				resolved = true
				break
			}
		}
		assert.True(t, resolved, "seed %d", seed)
		assert.Empty(t, sess.ImitationTarget)
		assert.Zero(t, sess.ImitationAttempts)
	}
}

func TestDispatch_QuotesDoNotRepeatUntilExhausted(t *testing.T) {
	set := strategy.NewSet()
	set.Register(strategy.Strategy{Name: strategy.NameSuggestQuote, Group: strategy.GroupImitation, Fn: strategy.SuggestQuote})
	require.NoError(t, set.Bind(domain.ModeMixed, strategy.NameSuggestQuote))

	lex := lexicon.Default()
	d := runtime.NewDispatcher(set, lex, runtime.WithSource(rand.NewPCG(7, 7)))
	sess := domain.NewSession("s1")

	seen := make(map[string]bool)
	for i := range len(lex.Quotes()) {
		out := d.Dispatch(context.Background(), sess, fmt.Sprintf("line %d", i), domain.ModeMixed)
		require.Equal(t, strategy.NameSuggestQuote, out.Strategy)
		_, quote, _ := strings.Cut(out.Response, "\n")
		assert.False(t, seen[quote], "quote repeated before exhaustion")
		seen[quote] = true
	}
	assert.Len(t, sess.UsedQuotes, len(lex.Quotes()))

	d.Dispatch(context.Background(), sess, "one more", domain.ModeMixed)
	assert.Len(t, sess.UsedQuotes, 1, "a new cycle starts once every quote has been shown")
}

func TestDispatch_Fallback(t *testing.T) {
	d := newDispatcher(1)
	sess := domain.NewSession("s1")

	out := d.Dispatch(context.Background(), sess, "hello there", domain.ModeBacktracking)

	assert.Equal(t, domain.FallbackResponse, out.Response)
	assert.True(t, out.Fallback)
	assert.Empty(t, out.Strategy)
	assert.Equal(t, 1, sess.Boredom)
}

func TestDispatch_UnknownModeUsesMixedPool(t *testing.T) {
	d := newDispatcher(1)
	sess := domain.NewSession("s1")
	sess.Banish("forest")

	out := d.Dispatch(context.Background(), sess, "forest", domain.Mode("sonnet"))

	assert.Equal(t, strategy.NameBanishedCheck, out.Strategy)
}

func TestDispatch_BoredomStaysInBounds(t *testing.T) {
	lines := []string{
		"I walked by the river at night",
		"the wolf and the moon",
		"",
		"I think of the tree and the bird",
		"Dublin is a city of rain",
		"I remember the forest and the sky",
		"a quiet line",
	}
	d := newDispatcher(42)
	sess := domain.NewSession("s1")
	modes := domain.Modes()

	for i := range 300 {
		prev := sess.Boredom
		out := d.Dispatch(context.Background(), sess, lines[i%len(lines)], modes[i%len(modes)])

		require.GreaterOrEqual(t, sess.Boredom, 0)
		if out.Skipped {
			require.Equal(t, prev, sess.Boredom)
			continue
		}
		require.True(t, sess.Boredom == prev+1 || sess.Boredom == 0, "boredom went from %d to %d", prev, sess.Boredom)
	}
}

func TestDispatch_Deterministic(t *testing.T) {
	run := func() []string {
		d := newDispatcher(99)
		sess := domain.NewSession("s1")
		var out []string
		for _, line := range []string{"the wolf", "I saw a bird in the sky", "Paris at night", "the river"} {
			out = append(out, d.Dispatch(context.Background(), sess, line, domain.ModeMixed).Response)
		}
		return out
	}
	assert.Equal(t, run(), run())
}

func TestDispatch_FailingStrategiesAreSkipped(t *testing.T) {
	broken := strategy.Strategy{Name: "broken", Fn: func(*strategy.Turn) (string, error) {
		return "", errors.New("boom")
	}}
	panicky := strategy.Strategy{Name: "panicky", Fn: func(*strategy.Turn) (string, error) {
		var words []string
		return words[3], nil
	}}
	ok := strategy.Strategy{Name: "ok", Fn: func(*strategy.Turn) (string, error) {
		return "ok", nil
	}}

	t.Run("a working strategy still answers", func(t *testing.T) {
		for seed := range uint64(10) {
			d := runtime.NewDispatcher(customSet(t, broken, panicky, ok), lexicon.Default(),
				runtime.WithSource(rand.NewPCG(seed, seed)))
			out := d.Dispatch(context.Background(), domain.NewSession("s1"), "anything", domain.ModeMixed)
			assert.Equal(t, "ok", out.Response)
		}
	})

	t.Run("failures fall back and are reported", func(t *testing.T) {
		var mu sync.Mutex
		failures := make(map[string]bool)
		hooks := domain.LifecycleHooks{
			OnStrategyFailure: func(_ context.Context, e *domain.StrategyEvent) {
				mu.Lock()
				defer mu.Unlock()
				assert.Equal(t, domain.EventStrategyFailure, e.Type)
				assert.Equal(t, "s1", e.SessionID)
				assert.Error(t, e.Err)
				failures[e.Strategy] = e.Panicked
			},
		}
		d := runtime.NewDispatcher(customSet(t, broken, panicky), lexicon.Default(),
			runtime.WithLifecycleHooks(hooks))

		out := d.Dispatch(context.Background(), domain.NewSession("s1"), "anything", domain.ModeMixed)

		assert.Equal(t, domain.FallbackResponse, out.Response)
		assert.Equal(t, map[string]bool{"broken": false, "panicky": true}, failures)
	})
}

func TestDispatch_StallHandler(t *testing.T) {
	slow := strategy.Strategy{Name: "slow", Fn: func(*strategy.Turn) (string, error) {
		time.Sleep(100 * time.Millisecond)
		return "eventually", nil
	}}
	stalled := make(chan string, 1)
	d := runtime.NewDispatcher(customSet(t, slow), lexicon.Default(),
		runtime.WithStallBudget(10*time.Millisecond),
		runtime.WithStallHandler(func(name string, _ time.Duration) {
			stalled <- name
		}),
	)

	out := d.Dispatch(context.Background(), domain.NewSession("s1"), "anything", domain.ModeMixed)

	assert.Equal(t, "eventually", out.Response)
	select {
	case name := <-stalled:
		assert.Equal(t, "slow", name)
	case <-time.After(time.Second):
		t.Fatal("stall handler was not called")
	}
}

func TestDispatch_TurnHook(t *testing.T) {
	var events []*domain.TurnEvent
	hooks := domain.LifecycleHooks{
		OnTurn: func(_ context.Context, e *domain.TurnEvent) {
			events = append(events, e)
		},
	}
	d := newDispatcher(1, runtime.WithLifecycleHooks(hooks))
	sess := domain.NewSession("s1")

	d.Dispatch(context.Background(), sess, " ", domain.ModeMixed)
	d.Dispatch(context.Background(), sess, "hello there", domain.ModeBacktracking)

	require.Len(t, events, 2)
	assert.True(t, events[0].Skipped)
	assert.Equal(t, domain.EventTurn, events[1].Type)
	assert.Equal(t, domain.ModeBacktracking, events[1].Mode)
	assert.True(t, events[1].Fallback)
}

func TestDispatch_ConcurrentSessions(t *testing.T) {
	d := newDispatcher(5)
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess := domain.NewSession(fmt.Sprintf("s%d", i))
			for range 50 {
				out := d.Dispatch(context.Background(), sess, "I dream of the wolf in the forest", domain.ModeMixed)
				assert.NotEmpty(t, out.Response)
			}
			assert.Len(t, sess.Transcript, 50)
		}()
	}
	wg.Wait()
}
