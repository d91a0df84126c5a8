// Package geocoding resolves points to addresses and back through an
// external provider, and keeps the add-toilet form's marker, address and
// feedback line in sync with those lookups.
//
// Lookups never block the caller and never fail with a Go error: each
// call yields exactly one Result whose Status says what happened.
package geocoding

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether p is within WGS84 bounds.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Place is one provider match.
type Place struct {
	Address     string `json:"address"`
	Point       Point  `json:"point"`
	CountryCode string `json:"countryCode,omitempty"`
}

// Provider is the external resolution capability. Implementations return
// an empty slice for "no result", ErrUnavailable when not configured, and
// a *ProviderError for any other provider status.
type Provider interface {
	ReverseGeocode(ctx context.Context, p Point) ([]Place, error)
	Geocode(ctx context.Context, address string) ([]Place, error)
}

// ErrUnavailable means the provider is not loaded or not configured.
var ErrUnavailable = errors.New("geocoding provider unavailable")

// ProviderError carries the raw status reported by the provider.
type ProviderError struct {
	Status string
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geocoding provider status %s: %v", e.Status, e.Err)
	}
	return "geocoding provider status " + e.Status
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Op names the lookup direction.
type Op string

const (
	OpReverse Op = "reverse"
	OpForward Op = "forward"
)

// Status is the outcome reported on the feedback line.
type Status string

const (
	StatusInitial                 Status = "initial"
	StatusLoading                 Status = "loading"
	StatusResolved                Status = "resolved"
	StatusNoResult                Status = "no_result"
	StatusUnavailable             Status = "unavailable"
	StatusFailed                  Status = "failed"
	StatusLocating                Status = "locating"
	StatusLocationError           Status = "location_error"
	StatusGeolocationNotSupported Status = "geolocation_not_supported"
)

// Terminal reports whether s ends an attempt.
func (s Status) Terminal() bool {
	switch s {
	case StatusLoading, StatusLocating, StatusInitial:
		return false
	}
	return true
}

// Feedback is the human-readable status line shown next to the map.
type Feedback struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// Sink receives feedback updates. Implementations must be safe for
// concurrent use.
type Sink interface {
	Update(Feedback)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Feedback)

func (f SinkFunc) Update(fb Feedback) { f(fb) }

// Result is the single completion of a lookup.
type Result struct {
	Op     Op     `json:"op"`
	Status Status `json:"status"`
	// Place is set only when Status is StatusResolved.
	Place *Place `json:"place,omitempty"`
	// ProviderStatus is the raw provider code for StatusFailed.
	ProviderStatus string   `json:"providerStatus,omitempty"`
	Feedback       Feedback `json:"feedback"`
}

// classify maps a provider outcome to a status.
func classify(places []Place, err error) (Status, string) {
	var perr *ProviderError
	switch {
	case err == nil && len(places) == 0:
		return StatusNoResult, ""
	case err == nil:
		return StatusResolved, ""
	case errors.Is(err, ErrUnavailable):
		return StatusUnavailable, ""
	case errors.As(err, &perr):
		return StatusFailed, strings.ToUpper(perr.Status)
	case errors.Is(err, context.DeadlineExceeded):
		return StatusFailed, "TIMEOUT"
	case errors.Is(err, context.Canceled):
		return StatusFailed, "CANCELLED"
	default:
		return StatusFailed, "UNKNOWN_ERROR"
	}
}
