package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"looview/internal/geocoding/metrics"
	"looview/internal/locale"
	"looview/pkg/requestcontext"
)

// Adapter wraps a Provider behind the two asynchronous lookups. A nil
// provider is treated as unavailable.
type Adapter struct {
	provider Provider
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	timeout  time.Duration
}

// Option configures an Adapter.
type Option func(*Adapter)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) { a.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Adapter) { a.metrics = m }
}

// WithTimeout bounds every provider call. Zero means no bound beyond the
// caller's context.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) { a.timeout = d }
}

func NewAdapter(provider Provider, opts ...Option) *Adapter {
	a := &Adapter{
		provider: provider,
		logger:   slog.Default(),
		tracer:   otel.Tracer("looview/geocoding"),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ResolveAddress looks up the best address for p. sink (optional) gets a
// loading update before this returns and the final status afterwards;
// the returned channel yields exactly one Result and is then closed.
func (a *Adapter) ResolveAddress(ctx context.Context, p Point, tr locale.Translator, sink Sink) <-chan Result {
	return a.run(ctx, OpReverse, tr, sink, func(ctx context.Context) ([]Place, error) {
		return a.provider.ReverseGeocode(ctx, p)
	}, attribute.Float64("geo.lat", p.Lat), attribute.Float64("geo.lng", p.Lng))
}

// ResolvePoint looks up the best coordinate and canonical address for
// free text. Same completion contract as ResolveAddress.
func (a *Adapter) ResolvePoint(ctx context.Context, address string, tr locale.Translator, sink Sink) <-chan Result {
	address = strings.TrimSpace(address)
	return a.run(ctx, OpForward, tr, sink, func(ctx context.Context) ([]Place, error) {
		if address == "" {
			return nil, nil
		}
		return a.provider.Geocode(ctx, address)
	}, attribute.Int("geo.address_len", len(address)))
}

func (a *Adapter) run(
	ctx context.Context,
	op Op,
	tr locale.Translator,
	sink Sink,
	call func(context.Context) ([]Place, error),
	attrs ...attribute.KeyValue,
) <-chan Result {
	out := make(chan Result, 1)
	if sink != nil {
		sink.Update(feedback(tr, op, StatusLoading, "", "", ""))
	}

	// The lookup outlives the triggering request; only values are kept.
	ctx = context.WithoutCancel(ctx)

	go func() {
		defer close(out)
		start := time.Now()
		ctx, span := a.tracer.Start(ctx, "geocoding."+string(op), trace.WithAttributes(attrs...))
		defer span.End()

		places, err := a.invoke(ctx, call)
		status, providerStatus := classify(places, err)

		res := Result{Op: op, Status: status, ProviderStatus: providerStatus}
		address := ""
		if status == StatusResolved {
			place := places[0]
			res.Place = &place
			address = place.Address
		}
		res.Feedback = feedback(tr, op, status, address, providerStatus, "")

		span.SetAttributes(attribute.String("geo.status", string(status)))
		if status == StatusFailed {
			span.SetStatus(codes.Error, providerStatus)
			a.logger.WarnContext(ctx, "geocode lookup failed",
				"request_id", requestcontext.RequestID(ctx),
				"op", string(op),
				"provider_status", providerStatus,
				"error", err,
			)
		} else {
			a.logger.InfoContext(ctx, "geocode_resolved",
				"event", "geocode_resolved",
				"log_type", "audit",
				"request_id", requestcontext.RequestID(ctx),
				"op", string(op),
				"status", string(status),
			)
		}
		if a.metrics != nil {
			a.metrics.ObserveLookup(string(op), string(status), start)
		}
		if sink != nil {
			sink.Update(res.Feedback)
		}
		out <- res
	}()
	return out
}

// invoke calls the provider, turning a missing provider and panics into
// ordinary errors so every attempt still completes.
func (a *Adapter) invoke(ctx context.Context, call func(context.Context) ([]Place, error)) (places []Place, err error) {
	if a.provider == nil {
		return nil, ErrUnavailable
	}
	defer func() {
		if rv := recover(); rv != nil {
			places, err = nil, &ProviderError{Status: "UNKNOWN_ERROR", Err: fmt.Errorf("panic: %v", rv)}
		}
	}()
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return call(ctx)
}

// Available reports whether a provider is configured.
func (a *Adapter) Available() bool {
	return a.provider != nil
}
