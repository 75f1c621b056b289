// Package metrics exposes engine activity as Prometheus collectors fed by
// lifecycle hooks.
package metrics

import (
	"context"
	"net/http"

	"github.com/aretw0/gymnasion/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeStrategy = "strategy"
	OutcomePriority = "priority"
	OutcomeFallback = "fallback"
	OutcomeSkipped  = "skipped"
)

// Metrics holds the engine collectors.
type Metrics struct {
	Turns      *prometheus.CounterVec
	Strategies *prometheus.CounterVec
	Failures   *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gymnasion_turns_total",
				Help: "Turns processed, by mode and outcome.",
			},
			[]string{"mode", "outcome"},
		),
		Strategies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gymnasion_strategy_responses_total",
				Help: "Responses produced, by strategy.",
			},
			[]string{"strategy"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gymnasion_strategy_failures_total",
				Help: "Strategy invocations skipped after an error or panic.",
			},
			[]string{"strategy", "kind"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gymnasion_turn_duration_seconds",
				Help:    "Time spent producing a response.",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
			[]string{"mode"},
		),
	}
	reg.MustRegister(m.Turns, m.Strategies, m.Failures, m.Duration)
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(_ context.Context, e *domain.TurnEvent) {
			mode := string(e.Mode)
			m.Turns.WithLabelValues(mode, outcome(e)).Inc()
			if e.Strategy != "" {
				m.Strategies.WithLabelValues(e.Strategy).Inc()
			}
			m.Duration.WithLabelValues(mode).Observe(e.Duration.Seconds())
		},
		OnStrategyFailure: func(_ context.Context, e *domain.StrategyEvent) {
			kind := "error"
			if e.Panicked {
				kind = "panic"
			}
			m.Failures.WithLabelValues(e.Strategy, kind).Inc()
		},
	}
}

func outcome(e *domain.TurnEvent) string {
	switch {
	case e.Skipped:
		return OutcomeSkipped
	case e.Fallback:
		return OutcomeFallback
	case e.Priority:
		return OutcomePriority
	}
	return OutcomeStrategy
}

// Handler serves the collectors of g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
