package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"looview/internal/locale"
	"looview/internal/platform/metrics"
	"looview/pkg/domain"
	dErrors "looview/pkg/domain-errors"
	"looview/pkg/requestcontext"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type stubValidator struct {
	identity *domain.Identity
	err      error
}

func (s stubValidator) ValidateToken(string) (*domain.Identity, error) {
	return s.identity, s.err
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("mints an id", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
	})

	t.Run("reuses the client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, "abc-123", seen)
	})
}

func TestRecovery(t *testing.T) {
	h := Recovery(discard)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, rr.Body.String())
}

func TestAuthenticate(t *testing.T) {
	var state domain.AuthState
	capture := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state = requestcontext.Auth(r.Context())
	})

	t.Run("anonymous without header", func(t *testing.T) {
		h := Authenticate(stubValidator{}, discard)(capture)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.False(t, state.Authenticated())
		assert.False(t, state.Loading)
	})

	t.Run("identity from valid token", func(t *testing.T) {
		h := Authenticate(stubValidator{identity: &domain.Identity{UserID: "u1", Role: domain.RoleAdmin}}, discard)(capture)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer tok")
		h.ServeHTTP(httptest.NewRecorder(), req)
		require.True(t, state.Authenticated())
		assert.Equal(t, domain.RoleAdmin, state.Identity.Role)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		h := Authenticate(stubValidator{err: errors.New("bad")}, discard)(capture)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer tok")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("validator not ready yields loading state", func(t *testing.T) {
		h := Authenticate(stubValidator{err: dErrors.New(dErrors.CodeUnavailable, "warming up")}, discard)(capture)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer tok")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, state.Loading)
		assert.False(t, state.Authenticated())
	})
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(discard)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(requestcontext.WithIdentity(req.Context(), domain.Identity{UserID: "u1"}))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestLocale(t *testing.T) {
	var tag string
	h := Locale(locale.Default())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag = requestcontext.Locale(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "nl-NL,en;q=0.5")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "nl", tag)
	assert.Equal(t, "nl", rr.Header().Get("Content-Language"))
}

func TestContentTypeJSON(t *testing.T) {
	h := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodPost, "/", stringsReader("x=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
}

func TestLatencyMiddlewareUsesRoutePattern(t *testing.T) {
	m := metrics.NewWith(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(LatencyMiddleware(m))
	r.Get("/toilets/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/toilets/abc", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/toilets/{id}", "GET", "4xx")))
}

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}
