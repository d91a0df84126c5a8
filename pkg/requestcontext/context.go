// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets these values; services read them without importing net/http.
//
//	state := requestcontext.Auth(ctx)
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Tests inject values directly:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithIdentity(ctx, domain.Identity{UserID: "u1"})
package requestcontext

import (
	"context"
	"time"

	"looview/pkg/domain"
)

type (
	authStateKey   struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
	localeKey      struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyAuthState   = authStateKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
	ContextKeyLocale      = localeKey{}
)

// -----------------------------------------------------------------------------
// Auth
// -----------------------------------------------------------------------------

// Auth returns the auth state attached to the context. Contexts that never
// passed through the auth middleware report no identity and not loading.
func Auth(ctx context.Context) domain.AuthState {
	if st, ok := ctx.Value(ContextKeyAuthState).(domain.AuthState); ok {
		return st
	}
	return domain.AuthState{}
}

// WithAuth injects an auth state into the context.
func WithAuth(ctx context.Context, st domain.AuthState) context.Context {
	return context.WithValue(ctx, ContextKeyAuthState, st)
}

// WithIdentity injects a settled, authenticated identity.
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return WithAuth(ctx, domain.AuthState{Identity: &identity})
}

// UserID returns the authenticated user id, or the zero id.
func UserID(ctx context.Context) domain.UserID {
	st := Auth(ctx)
	if st.Identity == nil {
		return ""
	}
	return st.Identity.UserID
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Locale returns the negotiated locale tag (e.g. "en", "nl"), or "".
func Locale(ctx context.Context) string {
	if tag, ok := ctx.Value(ContextKeyLocale).(string); ok {
		return tag
	}
	return ""
}

// WithLocale injects the negotiated locale tag.
func WithLocale(ctx context.Context, tag string) context.Context {
	return context.WithValue(ctx, ContextKeyLocale, tag)
}

// -----------------------------------------------------------------------------
// Request time
// -----------------------------------------------------------------------------

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (workers, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
