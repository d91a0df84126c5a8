package audit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ErrOutboxFull is returned when the outbox cannot take another event
// without blocking the caller.
var ErrOutboxFull = errors.New("audit outbox full")

// Publisher is the in-process outbox. Emit never blocks on a sink; the
// Worker drains Outbox and forwards events.
type Publisher struct {
	outbox chan Event
	logger *slog.Logger
	now    func() time.Time
}

type PublisherOption func(*Publisher)

func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) { p.logger = logger }
}

func WithPublisherClock(now func() time.Time) PublisherOption {
	return func(p *Publisher) { p.now = now }
}

// NewPublisher creates an outbox holding up to capacity pending events.
func NewPublisher(capacity int, opts ...PublisherOption) *Publisher {
	if capacity <= 0 {
		capacity = 1
	}
	p := &Publisher{
		outbox: make(chan Event, capacity),
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit stamps and enqueues base.
func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.ID == "" {
		base.ID = uuid.NewString()
	}
	if base.Timestamp.IsZero() {
		base.Timestamp = p.now()
	}
	select {
	case p.outbox <- base:
		return nil
	default:
		p.logger.WarnContext(ctx, "audit outbox full, dropping event",
			"event_id", base.ID,
			"event_type", string(base.Type),
		)
		return ErrOutboxFull
	}
}

// Outbox is the channel drained by a Worker.
func (p *Publisher) Outbox() <-chan Event {
	return p.outbox
}

// Pending returns the number of queued events.
func (p *Publisher) Pending() int {
	return len(p.outbox)
}
