package geocoding

import (
	"context"
	"sync"
	"time"

	"looview/internal/locale"
	"looview/internal/toilet/photo"
)

// State is a snapshot of one form session.
type State struct {
	ID        string         `json:"id"`
	Marker    Point          `json:"marker"`
	Address   string         `json:"address"`
	Feedback  Feedback       `json:"feedback"`
	Locating  bool           `json:"locating"`
	Photo     *photo.Preview `json:"photo,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Closed    bool           `json:"closed"`
}

// Session holds the marker, address and feedback line of one add-toilet
// form. Map clicks, address edits and device locates each start one
// lookup; a newer trigger does not cancel an older one, and whichever
// completion lands last wins.
type Session struct {
	id       string
	adapter  *Adapter
	previews *photo.Previews
	tr       locale.Translator
	now      func() time.Time

	mu        sync.Mutex
	marker    Point
	address   string
	feedback  Feedback
	locating  bool
	photo     *photo.Preview
	updatedAt time.Time
	closed    bool
}

func newSession(id string, adapter *Adapter, previews *photo.Previews, tr locale.Translator, now func() time.Time, marker Point) *Session {
	return &Session{
		id:        id,
		adapter:   adapter,
		previews:  previews,
		tr:        tr,
		now:       now,
		marker:    marker,
		feedback:  feedback(tr, "", StatusInitial, "", "", ""),
		updatedAt: now(),
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() State {
	st := State{
		ID:        s.id,
		Marker:    s.marker,
		Address:   s.address,
		Feedback:  s.feedback,
		Locating:  s.locating,
		UpdatedAt: s.updatedAt,
		Closed:    s.closed,
	}
	if s.photo != nil {
		pv := *s.photo
		st.Photo = &pv
	}
	return st
}

// Update implements Sink.
func (s *Session) Update(fb Feedback) {
	s.mutate(func() { s.feedback = fb })
}

// mutate applies fn under the lock unless the session is closed.
func (s *Session) mutate(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	fn()
	s.updatedAt = s.now()
	return true
}

// settle forwards one snapshot once apply has run on the lookup result.
func (s *Session) settle(results <-chan Result, apply func(Result)) <-chan State {
	out := make(chan State, 1)
	go func() {
		defer close(out)
		res, ok := <-results
		if ok {
			s.mutate(func() { apply(res) })
		}
		out <- s.Snapshot()
	}()
	return out
}

// MapClick moves the marker to p and looks up its address.
func (s *Session) MapClick(ctx context.Context, p Point) <-chan State {
	s.mutate(func() { s.marker = p })
	return s.reverse(ctx, p, false)
}

// InitialLookup fills a blank address from the current marker.
func (s *Session) InitialLookup(ctx context.Context) <-chan State {
	s.mu.Lock()
	p, blank := s.marker, s.address == ""
	s.mu.Unlock()
	if !blank {
		return s.done()
	}
	return s.reverse(ctx, p, true)
}

func (s *Session) reverse(ctx context.Context, p Point, quiet bool) <-chan State {
	s.Update(feedback(s.tr, OpReverse, StatusLoading, "", "", ""))
	res := s.adapter.ResolveAddress(ctx, p, s.tr, nil)
	return s.settle(res, func(r Result) {
		switch {
		case r.Status == StatusResolved:
			s.address = r.Place.Address
			s.feedback = r.Feedback
		case quiet && r.Status == StatusUnavailable:
			s.feedback = Feedback{
				Status:  StatusUnavailable,
				Message: Message(s.tr, OpReverse, StatusNoResult, "", "", "") + " " + r.Feedback.Message,
			}
		case quiet:
			s.feedback = feedback(s.tr, OpReverse, StatusNoResult, "", "", "")
		default:
			s.feedback = r.Feedback
		}
	})
}

// AddressBlur records the typed address and moves the marker to its best
// match. With no match the marker stays where it was.
func (s *Session) AddressBlur(ctx context.Context, address string) <-chan State {
	s.mutate(func() {
		s.address = address
		s.feedback = feedback(s.tr, OpForward, StatusLoading, "", "", "")
	})
	res := s.adapter.ResolvePoint(ctx, address, s.tr, nil)
	return s.settle(res, func(r Result) {
		if r.Status == StatusResolved {
			s.marker = r.Place.Point
		}
		s.feedback = r.Feedback
	})
}

// Locate moves the marker to the device position and looks up its
// address. On failure the marker is kept and the feedback line reports
// why.
func (s *Session) Locate(ctx context.Context, loc Locator) <-chan State {
	if loc == nil {
		s.mutate(func() {
			s.feedback = feedback(s.tr, "", StatusGeolocationNotSupported, "", "", "")
		})
		return s.done()
	}
	s.mutate(func() {
		s.locating = true
		s.feedback = feedback(s.tr, "", StatusLocating, "", "", "")
	})

	p, err := loc.Locate(ctx)
	if err != nil {
		status, detail := LocateStatus(err)
		s.mutate(func() {
			s.locating = false
			s.feedback = feedback(s.tr, "", status, "", "", detail)
		})
		return s.done()
	}

	s.mutate(func() { s.marker = p })
	res := s.adapter.ResolveAddress(ctx, p, s.tr, nil)
	return s.settle(res, func(r Result) {
		s.locating = false
		if r.Status == StatusResolved {
			s.address = r.Place.Address
			s.feedback = r.Feedback
			return
		}
		s.feedback = feedback(s.tr, OpReverse, StatusNoResult, "", "", "")
	})
}

// SetPhoto selects a new preview image, revoking any previous one.
func (s *Session) SetPhoto(fileName, contentType string, size int64) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.snapshotLocked()
	}
	old := ""
	if s.photo != nil {
		old = s.photo.Ref
	}
	pv := s.previews.Replace(old, fileName, contentType, size)
	s.photo = &pv
	s.updatedAt = s.now()
	return s.snapshotLocked()
}

// ClearPhoto revokes the selected preview, if any.
func (s *Session) ClearPhoto() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revokePhotoLocked()
	s.updatedAt = s.now()
	return s.snapshotLocked()
}

// Close revokes the preview and rejects further updates. Safe to call
// more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.revokePhotoLocked()
	s.closed = true
	s.updatedAt = s.now()
}

func (s *Session) revokePhotoLocked() {
	if s.photo != nil {
		_ = s.previews.Revoke(s.photo.Ref)
		s.photo = nil
	}
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

func (s *Session) done() <-chan State {
	out := make(chan State, 1)
	out <- s.Snapshot()
	close(out)
	return out
}
