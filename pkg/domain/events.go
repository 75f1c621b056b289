package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTurn            EventType = "turn"
	EventStrategyFailure EventType = "strategy_failure"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// TurnEvent is emitted once a turn has produced its response.
type TurnEvent struct {
	EventBase
	Mode     Mode          `json:"mode"`
	Strategy string        `json:"strategy,omitempty"`
	Priority bool          `json:"priority,omitempty"`
	Fallback bool          `json:"fallback,omitempty"`
	Skipped  bool          `json:"skipped,omitempty"`
	Duration time.Duration `json:"duration"`
}

// StrategyEvent is emitted when a strategy fails and is skipped.
type StrategyEvent struct {
	EventBase
	Strategy string `json:"strategy"`
	Err      error  `json:"-"`
	Panicked bool   `json:"panicked,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnTurn            func(context.Context, *TurnEvent)
	OnStrategyFailure func(context.Context, *StrategyEvent)
}

// CombineHooks returns hooks that call every non-nil callback of hooks in order.
func CombineHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var onTurn []func(context.Context, *TurnEvent)
	var onFailure []func(context.Context, *StrategyEvent)
	for _, h := range hooks {
		if h.OnTurn != nil {
			onTurn = append(onTurn, h.OnTurn)
		}
		if h.OnStrategyFailure != nil {
			onFailure = append(onFailure, h.OnStrategyFailure)
		}
	}

	var combined LifecycleHooks
	if len(onTurn) > 0 {
		combined.OnTurn = func(ctx context.Context, e *TurnEvent) {
			for _, fn := range onTurn {
				fn(ctx, e)
			}
		}
	}
	if len(onFailure) > 0 {
		combined.OnStrategyFailure = func(ctx context.Context, e *StrategyEvent) {
			for _, fn := range onFailure {
				fn(ctx, e)
			}
		}
	}
	return combined
}
