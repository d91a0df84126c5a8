package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"looview/pkg/platform/circuit"
)

type failingSink struct{}

func (failingSink) Append(context.Context, Event) error { return errors.New("broker down") }

func TestPublisherStampsEvents(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := NewPublisher(4, WithPublisherClock(func() time.Time { return fixed }))

	require.NoError(t, p.Emit(context.Background(), Event{Type: EventToiletCreated, ToiletID: "t1"}))
	e := <-p.Outbox()
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, fixed, e.Timestamp)
	assert.Equal(t, "t1", e.Key())
}

func TestPublisherNeverBlocks(t *testing.T) {
	p := NewPublisher(1)
	require.NoError(t, p.Emit(context.Background(), Event{Type: EventToiletCreated}))
	assert.ErrorIs(t, p.Emit(context.Background(), Event{Type: EventToiletCreated}), ErrOutboxFull)
	assert.Equal(t, 1, p.Pending())
}

func TestWorkerDeliversToAllSinks(t *testing.T) {
	p := NewPublisher(8)
	store := NewMemoryStore()
	w := NewWorker(p.Outbox(), nil, failingSink{}, store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, p.Emit(ctx, Event{Type: EventToiletCreated, UserID: "u1"}))
	require.NoError(t, p.Emit(ctx, Event{Type: EventSubmissionRefused, UserID: "u2"}))

	require.Eventually(t, func() bool { return len(store.All()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	events, err := store.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventToiletCreated, events[0].Type)
}

func TestWorkerFlushesQueuedEventsOnShutdown(t *testing.T) {
	p := NewPublisher(8)
	store := NewMemoryStore()
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Emit(context.Background(), Event{Type: EventToiletCreated}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewWorker(p.Outbox(), nil, store).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, store.All(), 3)
}

type countingSink struct {
	calls int
	err   error
}

func (s *countingSink) Append(context.Context, Event) error {
	s.calls++
	return s.err
}

func TestGuardedSinkStopsCallingFailingSink(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	breaker := circuit.New("kafka",
		circuit.WithFailureThreshold(2),
		circuit.WithSuccessThreshold(1),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }),
	)
	next := &countingSink{err: errors.New("broker down")}
	sink := NewGuardedSink(next, breaker, nil)
	ctx := context.Background()

	assert.Error(t, sink.Append(ctx, Event{}))
	assert.Error(t, sink.Append(ctx, Event{}))
	assert.True(t, breaker.IsOpen())

	assert.ErrorIs(t, sink.Append(ctx, Event{}), ErrSinkOpen)
	assert.Equal(t, 2, next.calls)

	now = now.Add(time.Minute)
	next.err = nil
	require.NoError(t, sink.Append(ctx, Event{}))
	assert.Equal(t, 3, next.calls)
	assert.False(t, breaker.IsOpen())
}
