package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"looview/pkg/domain"
	dErrors "looview/pkg/domain-errors"
	"looview/pkg/requestcontext"
)

// IdentityValidator resolves a bearer token to an identity.
type IdentityValidator interface {
	ValidateToken(tokenString string) (*domain.Identity, error)
}

// Authenticate resolves the auth state for every request. A valid bearer
// token yields an authenticated state; no token yields an anonymous one.
// A validator that cannot decide yet (CodeUnavailable) yields a loading
// state. Handlers decide what anonymous and loading mean for them.
func Authenticate(validator IdentityValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				next.ServeHTTP(w, r.WithContext(requestcontext.WithAuth(ctx, domain.AuthState{})))
				return
			}

			identity, err := validator.ValidateToken(strings.TrimSpace(token))
			if dErrors.HasCode(err, dErrors.CodeUnavailable) {
				logger.WarnContext(ctx, "auth provider not ready",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				next.ServeHTTP(w, r.WithContext(requestcontext.WithAuth(ctx, domain.AuthState{Loading: true})))
				return
			}
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithIdentity(ctx, *identity)))
		})
	}
}

// RequireAuth rejects requests without an authenticated identity. It
// must run after Authenticate.
func RequireAuth(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !requestcontext.Auth(ctx).Authenticated() {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
