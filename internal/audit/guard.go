package audit

import (
	"context"
	"errors"
	"log/slog"

	"looview/pkg/platform/circuit"
)

// ErrSinkOpen is returned while a guarded sink's breaker is open.
var ErrSinkOpen = errors.New("audit sink circuit open")

// GuardedSink drops events for a failing sink until its breaker admits a
// probe. Events dropped this way are only logged.
type GuardedSink struct {
	next    Sink
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewGuardedSink(next Sink, breaker *circuit.Breaker, logger *slog.Logger) *GuardedSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &GuardedSink{next: next, breaker: breaker, logger: logger}
}

func (g *GuardedSink) Append(ctx context.Context, event Event) error {
	if !g.breaker.Allow() {
		return ErrSinkOpen
	}
	if err := g.next.Append(ctx, event); err != nil {
		if _, change := g.breaker.RecordFailure(); change.Opened {
			g.logger.WarnContext(ctx, "audit sink circuit opened",
				"sink", g.breaker.Name(),
				"error", err,
			)
		}
		return err
	}
	if _, change := g.breaker.RecordSuccess(); change.Closed {
		g.logger.InfoContext(ctx, "audit sink circuit closed", "sink", g.breaker.Name())
	}
	return nil
}
