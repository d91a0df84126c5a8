package geocoding

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"looview/internal/geocoding/metrics"
	"looview/internal/locale"
	"looview/internal/toilet/photo"
)

// Sessions owns every open form session.
type Sessions struct {
	adapter  *Adapter
	previews *photo.Previews
	fallback Point
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// SessionsOption configures Sessions.
type SessionsOption func(*Sessions)

func WithSessionsLogger(logger *slog.Logger) SessionsOption {
	return func(s *Sessions) { s.logger = logger }
}

func WithSessionsMetrics(m *metrics.Metrics) SessionsOption {
	return func(s *Sessions) { s.metrics = m }
}

func WithSessionsClock(now func() time.Time) SessionsOption {
	return func(s *Sessions) { s.now = now }
}

// NewSessions creates a registry. fallback is the default map centre
// used when no start point is given and the device cannot be located.
func NewSessions(adapter *Adapter, previews *photo.Previews, fallback Point, opts ...SessionsOption) *Sessions {
	s := &Sessions{
		adapter:  adapter,
		previews: previews,
		fallback: fallback,
		logger:   slog.Default(),
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenRequest describes how a form session starts.
type OpenRequest struct {
	// Start is an explicit starting point (e.g. from a map long-press).
	Start *Point
	// Locator is consulted when Start is nil. With neither, the session
	// starts at the default centre.
	Locator Locator
	Address string
}

// Open starts a session and kicks off the initial address lookup. The
// returned channel yields the state once that lookup settles.
func (s *Sessions) Open(ctx context.Context, tr locale.Translator, req OpenRequest) (*Session, <-chan State) {
	start, status, detail := s.fallback, StatusResolved, ""
	switch {
	case req.Start != nil:
		start = *req.Start
	case req.Locator != nil:
		start, status, detail = CenterOrDefault(ctx, req.Locator, s.fallback)
	}

	sess := newSession(uuid.NewString(), s.adapter, s.previews, tr, s.now, start)
	sess.address = req.Address

	s.mu.Lock()
	s.sessions[sess.id] = sess
	n := len(s.sessions)
	s.mu.Unlock()
	s.report(n)

	if status != StatusResolved {
		sess.Update(feedback(tr, "", status, "", "", detail))
		return sess, sess.done()
	}
	return sess, sess.InitialLookup(ctx)
}

// Get returns an open session.
func (s *Sessions) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Close closes and forgets the session. Unknown ids are ignored.
func (s *Sessions) Close(id string) bool {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()
	if !ok {
		return false
	}
	sess.Close()
	s.report(n)
	return true
}

// CloseIdle closes every session untouched since before cutoff and
// returns how many were closed.
func (s *Sessions) CloseIdle(cutoff time.Time) int {
	s.mu.RLock()
	var stale []string
	for id, sess := range s.sessions {
		if sess.idleSince().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	s.mu.RUnlock()

	closed := 0
	for _, id := range stale {
		if s.Close(id) {
			closed++
		}
	}
	return closed
}

// Len returns the number of open sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// RunJanitor closes idle sessions every interval until ctx is done.
func (s *Sessions) RunJanitor(ctx context.Context, interval, ttl time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := s.CloseIdle(s.now().Add(-ttl)); n > 0 {
				s.logger.InfoContext(ctx, "closed idle form sessions", "count", n)
			}
		}
	}
}

func (s *Sessions) report(n int) {
	if s.metrics != nil {
		s.metrics.SetActiveSessions(n)
	}
}
