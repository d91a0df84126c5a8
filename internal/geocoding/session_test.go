package geocoding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"looview/internal/toilet/photo"
)

var (
	london = Point{Lat: 51.5074, Lng: -0.1278}
	dam    = Point{Lat: 52.3731, Lng: 4.8926}
)

type SessionSuite struct {
	suite.Suite
	stub     *stubProvider
	previews *photo.Previews
	sessions *Sessions
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.stub = newStub()
	s.stub.reverse[london] = []Place{{Address: "Charing Cross, London", Point: london}}
	s.stub.reverse[trafalgar] = []Place{trafalgarPlace}
	s.stub.reverse[dam] = []Place{{Address: "Dam, Amsterdam", Point: dam}}
	s.stub.forward["Dam Square"] = []Place{{Address: "Dam, Amsterdam", Point: dam}}
	s.previews = photo.New()
	s.sessions = NewSessions(NewAdapter(s.stub), s.previews, london)
}

func (s *SessionSuite) settle(ch <-chan State) State {
	s.T().Helper()
	select {
	case st := <-ch:
		return st
	case <-time.After(2 * time.Second):
		s.T().Fatal("session update did not settle")
		return State{}
	}
}

func (s *SessionSuite) open(start *Point) *Session {
	sess, ch := s.sessions.Open(context.Background(), english(), OpenRequest{Start: start})
	s.settle(ch)
	return sess
}

func (s *SessionSuite) TestOpenFillsAddressFromStart() {
	sess, ch := s.sessions.Open(context.Background(), english(), OpenRequest{Start: &trafalgar})
	st := s.settle(ch)

	s.Equal(sess.ID(), st.ID)
	s.Equal(trafalgar, st.Marker)
	s.Equal("Trafalgar Square, London", st.Address)
	s.Equal(StatusResolved, st.Feedback.Status)
	s.Equal(1, s.sessions.Len())
}

func (s *SessionSuite) TestOpenKeepsTypedAddress() {
	_, ch := s.sessions.Open(context.Background(), english(), OpenRequest{Start: &trafalgar, Address: "My own words"})
	st := s.settle(ch)

	s.Equal("My own words", st.Address)
	s.Equal(StatusInitial, st.Feedback.Status)
	s.Zero(s.stub.calls)
}

func (s *SessionSuite) TestOpenUsesDeviceLocation() {
	_, ch := s.sessions.Open(context.Background(), english(), OpenRequest{Locator: ReportedLocator{Point: &dam}})
	st := s.settle(ch)

	s.Equal(dam, st.Marker)
	s.Equal("Dam, Amsterdam", st.Address)
}

func (s *SessionSuite) TestOpenFallsBackWhenLocateFails() {
	_, ch := s.sessions.Open(context.Background(), english(), OpenRequest{Locator: ReportedLocator{Err: "permission denied"}})
	st := s.settle(ch)

	s.Equal(london, st.Marker)
	s.Empty(st.Address)
	s.Equal(StatusLocationError, st.Feedback.Status)
	s.Equal("Could not get your location: permission denied", st.Feedback.Message)
}

func (s *SessionSuite) TestInitialLookupWithoutAddress() {
	s.stub.reverse[london] = nil
	_, ch := s.sessions.Open(context.Background(), english(), OpenRequest{Start: &london})
	st := s.settle(ch)

	s.Empty(st.Address)
	s.Equal("Location set. Could not find an address for this point.", st.Feedback.Message)
}

func (s *SessionSuite) TestInitialLookupProviderUnavailable() {
	sessions := NewSessions(NewAdapter(nil), s.previews, london)
	_, ch := sessions.Open(context.Background(), english(), OpenRequest{Start: &london})
	st := s.settle(ch)

	s.Equal(StatusUnavailable, st.Feedback.Status)
	s.Equal("Location set. Could not find an address for this point. Address lookup is not available right now.", st.Feedback.Message)
}

func (s *SessionSuite) TestMapClickMovesMarkerAndAddress() {
	sess := s.open(&london)
	st := s.settle(sess.MapClick(context.Background(), trafalgar))

	s.Equal(trafalgar, st.Marker)
	s.Equal("Trafalgar Square, London", st.Address)
	s.Equal("Location updated: Trafalgar Square, London", st.Feedback.Message)
}

func (s *SessionSuite) TestMapClickWithoutAddressKeepsMarker() {
	sess := s.open(&london)
	nowhere := Point{Lat: 0, Lng: 0}
	st := s.settle(sess.MapClick(context.Background(), nowhere))

	s.Equal(nowhere, st.Marker)
	s.Equal("Charing Cross, London", st.Address)
	s.Equal(StatusNoResult, st.Feedback.Status)
}

func (s *SessionSuite) TestAddressBlurResolved() {
	sess := s.open(&london)
	st := s.settle(sess.AddressBlur(context.Background(), "Dam Square"))

	s.Equal(dam, st.Marker)
	s.Equal("Dam Square", st.Address)
	s.Equal(StatusResolved, st.Feedback.Status)
}

func (s *SessionSuite) TestAddressBlurNoResultLeavesMarker() {
	sess := s.open(&trafalgar)
	st := s.settle(sess.AddressBlur(context.Background(), "Atlantis"))

	s.Equal(trafalgar, st.Marker)
	s.Equal("Atlantis", st.Address)
	s.Equal("No results found for that address.", st.Feedback.Message)
}

func (s *SessionSuite) TestLocate() {
	sess := s.open(&london)

	st := s.settle(sess.Locate(context.Background(), ReportedLocator{Point: &dam}))
	s.Equal(dam, st.Marker)
	s.Equal("Dam, Amsterdam", st.Address)
	s.False(st.Locating)

	st = s.settle(sess.Locate(context.Background(), ReportedLocator{Err: "timeout"}))
	s.Equal(dam, st.Marker)
	s.Equal(StatusLocationError, st.Feedback.Status)
	s.False(st.Locating)

	st = s.settle(sess.Locate(context.Background(), ReportedLocator{Unsupported: true}))
	s.Equal(StatusGeolocationNotSupported, st.Feedback.Status)

	st = s.settle(sess.Locate(context.Background(), nil))
	s.Equal(StatusGeolocationNotSupported, st.Feedback.Status)
}

func (s *SessionSuite) TestLocateWithoutAddress() {
	sess := s.open(&london)
	nowhere := Point{Lat: 1, Lng: 1}

	st := s.settle(sess.Locate(context.Background(), ReportedLocator{Point: &nowhere}))
	s.Equal(nowhere, st.Marker)
	s.Equal("Location set. Could not find an address for this point.", st.Feedback.Message)
}

func (s *SessionSuite) TestLastCompletionWins() {
	sess := s.open(&london)
	slow := s.stub.gate(trafalgar)

	first := sess.MapClick(context.Background(), trafalgar)
	second := s.settle(sess.MapClick(context.Background(), dam))
	s.Equal("Dam, Amsterdam", second.Address)

	close(slow)
	st := s.settle(first)

	// the older lookup landed last, so its address sticks while the
	// marker stays on the newest click
	s.Equal("Trafalgar Square, London", st.Address)
	s.Equal(dam, st.Marker)
}

func (s *SessionSuite) TestPhotoLifecycle() {
	sess := s.open(&london)

	st := sess.SetPhoto("a.jpg", "image/jpeg", 10)
	s.Require().NotNil(st.Photo)
	first := st.Photo.Ref
	s.True(photo.IsPreviewRef(first))

	st = sess.SetPhoto("b.jpg", "image/jpeg", 20)
	s.NotEqual(first, st.Photo.Ref)
	_, ok := s.previews.Get(first)
	s.False(ok, "replaced preview is revoked")
	s.Equal(1, s.previews.Live())

	st = sess.ClearPhoto()
	s.Nil(st.Photo)
	s.Equal(0, s.previews.Live())
}

func (s *SessionSuite) TestCloseRevokesPhotoAndFreezesState() {
	sess := s.open(&london)
	sess.SetPhoto("a.jpg", "image/jpeg", 10)
	slow := s.stub.gate(trafalgar)
	pending := sess.MapClick(context.Background(), trafalgar)

	s.True(s.sessions.Close(sess.ID()))
	close(slow)
	st := s.settle(pending)

	s.True(st.Closed)
	s.Equal("Charing Cross, London", st.Address)
	s.Equal(0, s.previews.Live())
	s.False(s.sessions.Close(sess.ID()))
	_, ok := s.sessions.Get(sess.ID())
	s.False(ok)
}

func (s *SessionSuite) TestCloseIdle() {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	sessions := NewSessions(NewAdapter(s.stub), s.previews, london, WithSessionsClock(clock))
	_, ch := sessions.Open(context.Background(), english(), OpenRequest{Start: &london})
	s.settle(ch)

	s.Zero(sessions.CloseIdle(now.Add(-time.Minute)))
	s.Equal(1, sessions.CloseIdle(now.Add(time.Minute)))
	s.Zero(sessions.Len())
}

func TestLocateStatus(t *testing.T) {
	status, detail := LocateStatus(&LocationError{Message: "denied"})
	assert.Equal(t, StatusLocationError, status)
	assert.Equal(t, "denied", detail)

	status, _ = LocateStatus(ErrGeolocationNotSupported)
	assert.Equal(t, StatusGeolocationNotSupported, status)

	status, _ = LocateStatus(nil)
	assert.Equal(t, StatusResolved, status)
}

func TestReportedLocatorRejectsOutOfRange(t *testing.T) {
	bad := Point{Lat: 91, Lng: 0}
	_, err := ReportedLocator{Point: &bad}.Locate(context.Background())
	var lerr *LocationError
	require.ErrorAs(t, err, &lerr)

	_, err = ReportedLocator{}.Locate(context.Background())
	require.ErrorAs(t, err, &lerr)
}

func TestCenterOrDefault(t *testing.T) {
	p, status, _ := CenterOrDefault(context.Background(), nil, london)
	assert.Equal(t, london, p)
	assert.Equal(t, StatusGeolocationNotSupported, status)

	p, status, _ = CenterOrDefault(context.Background(), ReportedLocator{Point: &dam}, london)
	assert.Equal(t, dam, p)
	assert.Equal(t, StatusResolved, status)
}
