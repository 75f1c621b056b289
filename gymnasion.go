package gymnasion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/aretw0/gymnasion/internal/logging"
	"github.com/aretw0/gymnasion/internal/runtime"
	"github.com/aretw0/gymnasion/pkg/adapters/memory"
	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/aretw0/gymnasion/pkg/input"
	"github.com/aretw0/gymnasion/pkg/lexicon"
	"github.com/aretw0/gymnasion/pkg/ports"
	"github.com/aretw0/gymnasion/pkg/session"
	"github.com/aretw0/gymnasion/pkg/strategy"
)

// ErrInvalidInput is returned when a line cannot be accepted at all
// (too large or not UTF-8). Empty lines are not an error.
var ErrInvalidInput = errors.New("invalid input")

// Engine is the high-level entry point for the gymnasion library.
// It owns the catalogs and the dispatcher and drives turns through a session manager.
// Safe for concurrent use.
type Engine struct {
	lexicon    *lexicon.Lexicon
	strategies *strategy.Set
	store      ports.SessionStore
	locker     ports.DistributedLocker
	source     rand.Source
	sanitizer  input.Sanitizer
	hooks      []domain.LifecycleHooks
	logger     *slog.Logger
	stall      *time.Duration

	dispatcher *runtime.Dispatcher
	sessions   *session.Manager
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLexicon replaces the embedded catalog.
func WithLexicon(lex *lexicon.Lexicon) Option {
	return func(e *Engine) {
		e.lexicon = lex
	}
}

// WithStrategies replaces the built-in strategy set and mode table.
func WithStrategies(set *strategy.Set) Option {
	return func(e *Engine) {
		e.strategies = set
	}
}

// WithStore sets where sessions live between turns. Defaults to memory.
func WithStore(store ports.SessionStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker enables distributed locking for stores shared by several replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithSource injects the random source used for every choice the engine makes.
func WithSource(src rand.Source) Option {
	return func(e *Engine) {
		e.source = src
	}
}

// WithSeed makes every choice reproducible from seed.
func WithSeed(seed uint64) Option {
	return WithSource(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// WithMaxInputSize bounds accepted lines, in bytes.
func WithMaxInputSize(n int) Option {
	return func(e *Engine) {
		e.sanitizer = input.New(n)
	}
}

// WithLifecycleHooks registers observability hooks. It may be given several times.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStallBudget sets how long one strategy may run before it is treated as stalled.
func WithStallBudget(budget time.Duration) Option {
	return func(e *Engine) {
		e.stall = &budget
	}
}

// New initializes an Engine. With no options it uses the embedded catalog,
// every built-in strategy, an in-memory store and a randomly seeded source.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.lexicon == nil {
		e.lexicon = lexicon.Default()
	}
	if e.strategies == nil {
		e.strategies = strategy.Default()
	}
	if e.store == nil {
		e.store = memory.NewStore()
	}

	runtimeOpts := []runtime.Option{
		runtime.WithLogger(e.logger),
		runtime.WithLifecycleHooks(domain.CombineHooks(e.hooks...)),
	}
	if e.source != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithSource(e.source))
	}
	if e.stall != nil {
		runtimeOpts = append(runtimeOpts, runtime.WithStallBudget(*e.stall))
	}
	e.dispatcher = runtime.NewDispatcher(e.strategies, e.lexicon, runtimeOpts...)

	sessionOpts := []session.Option{session.WithLogger(e.logger)}
	if e.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(e.locker))
	}
	e.sessions = session.NewManager(e.store, sessionOpts...)

	return e
}

// ProcessTurn answers one line of text for a session and returns the response
// with the session's state after the turn. Unknown modes run as mixed.
//
// The returned error only ever reports an invalid session ID, a rejected line
// (ErrInvalidInput) or a store failure: the engine itself always answers.
func (e *Engine) ProcessTurn(ctx context.Context, sessionID, text, mode string) (domain.TurnResult, error) {
	m, known := domain.ParseMode(mode)
	if !known && mode != "" {
		e.logger.Debug("unknown mode, using default", "session_id", sessionID, "mode", mode, "default", m)
	}

	clean, err := e.sanitizer.Sanitize(text)
	if err != nil {
		return domain.TurnResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// An empty line never creates or touches a session.
	if strings.TrimSpace(clean) == "" {
		sess, err := e.load(ctx, sessionID)
		if err != nil {
			return domain.TurnResult{}, err
		}
		out := e.dispatcher.Dispatch(ctx, sess, clean, m)
		return domain.TurnResult{Response: out.Response, Mode: m, Status: sess.Status()}, nil
	}

	var out domain.Outcome
	saved, err := e.sessions.Update(ctx, sessionID, func(ctx context.Context, sess *domain.Session) error {
		out = e.dispatcher.Dispatch(ctx, sess, clean, m)
		return nil
	})
	if err != nil {
		return domain.TurnResult{}, err
	}

	return domain.TurnResult{Response: out.Response, Mode: m, Status: saved.Status()}, nil
}

// Status returns the presentation view of a session. Unknown sessions report
// the initial defaults.
func (e *Engine) Status(ctx context.Context, sessionID string) (domain.Status, error) {
	sess, err := e.load(ctx, sessionID)
	if err != nil {
		return domain.Status{}, err
	}
	return sess.Status(), nil
}

// Session returns a copy of the full session record.
// Returns domain.ErrSessionNotFound if it was never stored.
func (e *Engine) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	return e.sessions.Load(ctx, sessionID)
}

// Reset returns every field of the session to its initial default.
func (e *Engine) Reset(ctx context.Context, sessionID string) error {
	_, err := e.sessions.Update(ctx, sessionID, func(_ context.Context, sess *domain.Session) error {
		sess.Reset()
		return nil
	})
	if err != nil {
		return err
	}
	e.logger.Info("session reset", "session_id", sessionID)
	return nil
}

// Delete forgets a session entirely.
func (e *Engine) Delete(ctx context.Context, sessionID string) error {
	return e.sessions.Delete(ctx, sessionID)
}

// Sessions lists the stored session IDs.
func (e *Engine) Sessions(ctx context.Context) ([]string, error) {
	return e.sessions.List(ctx)
}

// Lexicon returns the catalog the engine draws from.
func (e *Engine) Lexicon() *lexicon.Lexicon {
	return e.lexicon
}

// Strategies returns the strategy set and mode table.
func (e *Engine) Strategies() *strategy.Set {
	return e.strategies
}

func (e *Engine) load(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := e.sessions.Load(ctx, sessionID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return domain.NewSession(sessionID), nil
	}
	return sess, err
}
