package nav

import (
	"context"
	"log/slog"
	"time"
)

// Transition describes one committed change of the active view.
type Transition struct {
	From ViewID
	To   ViewID
	At   time.Time
}

// TransitionObserver receives exactly one notification per committed
// transition. Blocked attempts, superseded chains, and boundary no-ops are
// never reported.
type TransitionObserver interface {
	OnTransition(ctx context.Context, t Transition)
}

// NoopObserver discards all notifications.
type NoopObserver struct{}

func (NoopObserver) OnTransition(context.Context, Transition) {}

// SlogObserver emits one Info record per transition to a slog.Logger.
type SlogObserver struct {
	logger *slog.Logger
}

// NewSlogObserver creates a SlogObserver that emits to the given logger.
func NewSlogObserver(logger *slog.Logger) *SlogObserver {
	return &SlogObserver{logger: logger}
}

func (o *SlogObserver) OnTransition(ctx context.Context, t Transition) {
	o.logger.LogAttrs(ctx, slog.LevelInfo, "nav.transition",
		slog.String("from", string(t.From)),
		slog.String("to", string(t.To)),
		slog.Time("at", t.At),
	)
}

// MultiObserver fans each notification out to several observers in order.
type MultiObserver []TransitionObserver

func (m MultiObserver) OnTransition(ctx context.Context, t Transition) {
	for _, o := range m {
		if o != nil {
			o.OnTransition(ctx, t)
		}
	}
}
