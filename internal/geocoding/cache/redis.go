// Package cache memoizes geocoding lookups in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"looview/internal/geocoding"
	"looview/internal/geocoding/metrics"
)

const (
	reversePrefix = "geocode:rev:"
	forwardPrefix = "geocode:fwd:"
)

// Provider decorates a geocoding.Provider with a Redis read-through cache.
// Only successful lookups (including "no result") are cached. Redis
// failures are logged and bypassed.
type Provider struct {
	next    geocoding.Provider
	client  redis.UniversalClient
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Provider)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) { p.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Provider) { p.metrics = m }
}

// New wraps next. ttl <= 0 disables expiry.
func New(next geocoding.Provider, client redis.UniversalClient, ttl time.Duration, opts ...Option) *Provider {
	p := &Provider{next: next, client: client, ttl: ttl, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ReverseKey rounds to five decimals (about a metre) so nearby clicks
// share an entry.
func ReverseKey(pt geocoding.Point) string {
	return fmt.Sprintf("%s%.5f,%.5f", reversePrefix, pt.Lat, pt.Lng)
}

// ForwardKey normalizes case and whitespace of the query.
func ForwardKey(address string) string {
	return forwardPrefix + strings.Join(strings.Fields(strings.ToLower(address)), " ")
}

func (p *Provider) ReverseGeocode(ctx context.Context, pt geocoding.Point) ([]geocoding.Place, error) {
	return p.lookup(ctx, string(geocoding.OpReverse), ReverseKey(pt), func() ([]geocoding.Place, error) {
		return p.next.ReverseGeocode(ctx, pt)
	})
}

func (p *Provider) Geocode(ctx context.Context, address string) ([]geocoding.Place, error) {
	return p.lookup(ctx, string(geocoding.OpForward), ForwardKey(address), func() ([]geocoding.Place, error) {
		return p.next.Geocode(ctx, address)
	})
}

func (p *Provider) lookup(ctx context.Context, op, key string, miss func() ([]geocoding.Place, error)) ([]geocoding.Place, error) {
	raw, err := p.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var places []geocoding.Place
		if jerr := json.Unmarshal(raw, &places); jerr == nil {
			p.hit(op)
			return places, nil
		}
		p.logger.WarnContext(ctx, "discarding corrupt geocode cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		p.logger.WarnContext(ctx, "geocode cache read failed", "key", key, "error", err)
	}
	p.miss(op)

	places, err := miss()
	if err != nil {
		return nil, err
	}
	if places == nil {
		places = []geocoding.Place{}
	}
	if data, jerr := json.Marshal(places); jerr == nil {
		if serr := p.client.Set(ctx, key, data, p.expiry()).Err(); serr != nil {
			p.logger.WarnContext(ctx, "geocode cache write failed", "key", key, "error", serr)
		}
	}
	return places, nil
}

func (p *Provider) expiry() time.Duration {
	if p.ttl <= 0 {
		return 0
	}
	return p.ttl
}

func (p *Provider) hit(op string) {
	if p.metrics != nil {
		p.metrics.RecordCacheHit(op)
	}
}

func (p *Provider) miss(op string) {
	if p.metrics != nil {
		p.metrics.RecordCacheMiss(op)
	}
}
