package geocoding

import (
	"context"
	"errors"
)

// Locator reports the device position.
type Locator interface {
	Locate(ctx context.Context) (Point, error)
}

// ErrGeolocationNotSupported means the device has no location capability.
var ErrGeolocationNotSupported = errors.New("geolocation not supported")

// LocationError is a failed device lookup (permission denied, timeout).
type LocationError struct {
	Message string
}

func (e *LocationError) Error() string { return "location unavailable: " + e.Message }

// ReportedLocator replays a position (or failure) reported by a client
// device. The server never has its own location source.
type ReportedLocator struct {
	Point       *Point
	Err         string
	Unsupported bool
}

func (r ReportedLocator) Locate(context.Context) (Point, error) {
	switch {
	case r.Unsupported:
		return Point{}, ErrGeolocationNotSupported
	case r.Err != "":
		return Point{}, &LocationError{Message: r.Err}
	case r.Point == nil:
		return Point{}, &LocationError{Message: "no position reported"}
	case !r.Point.Valid():
		return Point{}, &LocationError{Message: "reported position out of range"}
	default:
		return *r.Point, nil
	}
}

// LocateStatus classifies a locator error.
func LocateStatus(err error) (Status, string) {
	var lerr *LocationError
	switch {
	case err == nil:
		return StatusResolved, ""
	case errors.Is(err, ErrGeolocationNotSupported):
		return StatusGeolocationNotSupported, ""
	case errors.As(err, &lerr):
		return StatusLocationError, lerr.Message
	default:
		return StatusLocationError, err.Error()
	}
}

// CenterOrDefault returns the device position, or fallback with the
// failure status when the device cannot be located.
func CenterOrDefault(ctx context.Context, loc Locator, fallback Point) (Point, Status, string) {
	if loc == nil {
		return fallback, StatusGeolocationNotSupported, ""
	}
	p, err := loc.Locate(ctx)
	if err != nil {
		status, detail := LocateStatus(err)
		return fallback, status, detail
	}
	return p, StatusResolved, ""
}
