// Package google implements the geocoding provider on the Google Maps
// Geocoding API.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"googlemaps.github.io/maps"

	"looview/internal/geocoding"
	"looview/pkg/requestcontext"
)

// statusZeroResults is reported by the API when nothing matched.
const statusZeroResults = "ZERO_RESULTS"

// Provider calls the Google Maps Geocoding API.
type Provider struct {
	client *maps.Client
	region string
}

// Option configures the provider.
type Option func(*config)

type config struct {
	baseURL    string
	httpClient *http.Client
	region     string
}

// WithBaseURL points the client at another host (tests).
func WithBaseURL(u string) Option {
	return func(c *config) { c.baseURL = u }
}

// WithHTTPClient overrides the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) { c.httpClient = hc }
}

// WithRegion biases results towards a ccTLD region code, e.g. "gb".
func WithRegion(region string) Option {
	return func(c *config) { c.region = strings.ToLower(region) }
}

// New creates a provider. An empty apiKey yields geocoding.ErrUnavailable
// so callers can fall back to running without a provider.
func New(apiKey string, opts ...Option) (*Provider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, geocoding.ErrUnavailable
	}
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	clientOpts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if cfg.baseURL != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(cfg.baseURL))
	}
	if cfg.httpClient != nil {
		clientOpts = append(clientOpts, maps.WithHTTPClient(cfg.httpClient))
	}
	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("google maps client: %w", err)
	}
	return &Provider{client: client, region: cfg.region}, nil
}

func (p *Provider) ReverseGeocode(ctx context.Context, pt geocoding.Point) ([]geocoding.Place, error) {
	results, err := p.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng:   &maps.LatLng{Lat: pt.Lat, Lng: pt.Lng},
		Language: requestcontext.Locale(ctx),
	})
	return toPlaces(results, err)
}

func (p *Provider) Geocode(ctx context.Context, address string) ([]geocoding.Place, error) {
	results, err := p.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  address,
		Region:   p.region,
		Language: requestcontext.Locale(ctx),
	})
	return toPlaces(results, err)
}

func toPlaces(results []maps.GeocodingResult, err error) ([]geocoding.Place, error) {
	if err != nil {
		status, ok := Status(err)
		switch {
		case ok && status == statusZeroResults:
			return []geocoding.Place{}, nil
		case ok && status == "REQUEST_DENIED":
			return nil, &geocoding.ProviderError{Status: status, Err: errors.Join(geocoding.ErrUnavailable, err)}
		case ok:
			return nil, &geocoding.ProviderError{Status: status, Err: err}
		}
		return nil, err
	}
	places := make([]geocoding.Place, 0, len(results))
	for _, r := range results {
		places = append(places, geocoding.Place{
			Address:     r.FormattedAddress,
			Point:       geocoding.Point{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
			CountryCode: countryCode(r.AddressComponents),
		})
	}
	return places, nil
}

// Status extracts the API status from an error of the form
// "maps: STATUS - message".
func Status(err error) (string, bool) {
	msg, ok := strings.CutPrefix(err.Error(), "maps: ")
	if !ok {
		return "", false
	}
	status, _, _ := strings.Cut(msg, " ")
	if status == "" || strings.ToUpper(status) != status {
		return "", false
	}
	return status, true
}

func countryCode(components []maps.AddressComponent) string {
	for _, c := range components {
		if slices.Contains(c.Types, "country") {
			return strings.ToUpper(c.ShortName)
		}
	}
	return ""
}
