package audit

import (
	"context"
	"log/slog"
)

// Sink receives drained events.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Worker consumes audit events from a channel and forwards them to every
// sink. A failing sink is logged and does not stop the others.
type Worker struct {
	sinks  []Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(inbox <-chan Event, logger *slog.Logger, sinks ...Sink) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{sinks: sinks, inbox: inbox, logger: logger}
}

// Run drains the inbox until ctx is done. Events still queued at that
// point are flushed with a fresh context before returning.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		case event, ok := <-w.inbox:
			if !ok {
				return nil
			}
			w.deliver(ctx, event)
		}
	}
}

func (w *Worker) drain() {
	ctx := context.Background()
	for {
		select {
		case event, ok := <-w.inbox:
			if !ok {
				return
			}
			w.deliver(ctx, event)
		default:
			return
		}
	}
}

func (w *Worker) deliver(ctx context.Context, event Event) {
	for _, sink := range w.sinks {
		if err := sink.Append(ctx, event); err != nil {
			w.logger.ErrorContext(ctx, "failed to deliver audit event",
				"event_id", event.ID,
				"event_type", string(event.Type),
				"error", err,
			)
		}
	}
}
