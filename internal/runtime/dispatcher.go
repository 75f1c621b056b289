package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/gymnasion/internal/logging"
	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/aretw0/gymnasion/pkg/lexicon"
	"github.com/aretw0/gymnasion/pkg/strategy"
)

// DefaultStallBudget is how long a single strategy may run before the stall
// handler fires.
const DefaultStallBudget = 2 * time.Second

// StallHandler is called from the watchdog goroutine when a strategy overruns its budget.
type StallHandler func(name string, budget time.Duration)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for skipped strategies and turn traces.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(d *Dispatcher) {
		d.hooks = hooks
	}
}

// WithSource sets the random source. The source is guarded by a mutex, so it
// may be shared by concurrent turns.
func WithSource(src rand.Source) Option {
	return func(d *Dispatcher) {
		d.rand = rand.New(&lockedSource{src: src})
	}
}

// WithStallBudget sets the per-strategy watchdog budget. Zero disables the watchdog.
func WithStallBudget(budget time.Duration) Option {
	return func(d *Dispatcher) {
		d.stallBudget = budget
	}
}

// WithStallHandler replaces the default stall handler, which panics.
func WithStallHandler(fn StallHandler) Option {
	return func(d *Dispatcher) {
		d.onStall = fn
	}
}

// Dispatcher selects and runs the strategy that answers a turn.
// It holds no session state; callers serialize turns of the same session.
type Dispatcher struct {
	set         *strategy.Set
	lex         *lexicon.Lexicon
	rand        *rand.Rand
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	stallBudget time.Duration
	onStall     StallHandler
}

// NewDispatcher creates a dispatcher over a strategy set and a lexicon.
func NewDispatcher(set *strategy.Set, lex *lexicon.Lexicon, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		set:         set,
		lex:         lex,
		logger:      logging.NewNop(),
		stallBudget: DefaultStallBudget,
		onStall:     panicOnStall,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rand == nil {
		d.rand = rand.New(&lockedSource{src: rand.NewPCG(rand.Uint64(), rand.Uint64())})
	}
	return d
}

func panicOnStall(name string, budget time.Duration) {
	panic(fmt.Sprintf("strategy %q stalled for more than %s", name, budget))
}

// Dispatch records text into sess and returns the response for the turn.
// It always produces a response.
func (d *Dispatcher) Dispatch(ctx context.Context, sess *domain.Session, text string, mode domain.Mode) domain.Outcome {
	start := time.Now()
	out := d.dispatch(ctx, sess, text, mode)

	d.logger.Debug("turn dispatched",
		"session_id", sess.ID,
		"mode", mode,
		"strategy", out.Strategy,
		"priority", out.Priority,
		"fallback", out.Fallback,
	)
	if d.hooks.OnTurn != nil {
		d.hooks.OnTurn(ctx, &domain.TurnEvent{
			EventBase: domain.EventBase{
				Timestamp: time.Now(),
				Type:      domain.EventTurn,
				SessionID: sess.ID,
			},
			Mode:     mode,
			Strategy: out.Strategy,
			Priority: out.Priority,
			Fallback: out.Fallback,
			Skipped:  out.Skipped,
			Duration: time.Since(start),
		})
	}
	return out
}

func (d *Dispatcher) dispatch(ctx context.Context, sess *domain.Session, text string, mode domain.Mode) domain.Outcome {
	if strings.TrimSpace(text) == "" {
		return domain.Outcome{Response: domain.EmptyInputPrompt, Skipped: true}
	}

	sess.Append(text)
	sess.BumpBoredom()

	turn := &strategy.Turn{
		Text:    text,
		Session: sess,
		Lexicon: d.lex,
		Rand:    d.rand,
	}

	// Priority pass: a used banished word is always called out, and an open
	// challenge is always followed up in modes that include it.
	if len(sess.BanishedWords) > 0 {
		if st, ok := d.set.Lookup(strategy.NameBanishedCheck); ok {
			if resp := d.invoke(ctx, st, turn); resp != "" {
				return domain.Outcome{Response: resp, Strategy: st.Name, Priority: true}
			}
		}
	}
	if sess.HasOpenChallenge() && d.set.Allows(mode, strategy.NameAuthorialImitation) {
		if st, ok := d.set.Lookup(strategy.NameAuthorialImitation); ok {
			if resp := d.invoke(ctx, st, turn); resp != "" {
				return domain.Outcome{Response: resp, Strategy: st.Name, Priority: true}
			}
		}
	}

	pool := d.set.Pool(mode)
	d.rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	for _, st := range pool {
		if resp := d.invoke(ctx, st, turn); resp != "" {
			return domain.Outcome{Response: resp, Strategy: st.Name}
		}
	}

	return domain.Outcome{Response: domain.FallbackResponse, Fallback: true}
}

// invoke runs one strategy inside the fail-soft boundary. Errors and panics
// are reported and turned into an empty response.
func (d *Dispatcher) invoke(ctx context.Context, st strategy.Strategy, turn *strategy.Turn) (resp string) {
	if d.stallBudget > 0 && d.onStall != nil {
		watchdog := time.AfterFunc(d.stallBudget, func() {
			d.onStall(st.Name, d.stallBudget)
		})
		defer watchdog.Stop()
	}

	defer func() {
		if r := recover(); r != nil {
			d.fail(ctx, turn.Session, st.Name, fmt.Errorf("panic: %v", r), true)
			resp = ""
		}
	}()

	resp, err := st.Invoke(turn)
	if err != nil {
		d.fail(ctx, turn.Session, st.Name, err, false)
		return ""
	}
	return resp
}

func (d *Dispatcher) fail(ctx context.Context, sess *domain.Session, name string, err error, panicked bool) {
	d.logger.Warn("strategy failed, skipping",
		"session_id", sess.ID,
		"strategy", name,
		"panicked", panicked,
		"err", err,
	)
	if d.hooks.OnStrategyFailure != nil {
		d.hooks.OnStrategyFailure(ctx, &domain.StrategyEvent{
			EventBase: domain.EventBase{
				Timestamp: time.Now(),
				Type:      domain.EventStrategyFailure,
				SessionID: sess.ID,
			},
			Strategy: name,
			Err:      err,
			Panicked: panicked,
		})
	}
}

type lockedSource struct {
	mu  sync.Mutex
	src rand.Source
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}
