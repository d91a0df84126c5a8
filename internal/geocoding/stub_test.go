package geocoding

import (
	"context"
	"sync"
)

// stubProvider answers lookups from fixed tables. A gate, when set for a
// key, blocks that lookup until the channel is closed.
type stubProvider struct {
	mu       sync.Mutex
	reverse  map[Point][]Place
	forward  map[string][]Place
	err      error
	gates    map[any]chan struct{}
	calls    int
	panicMsg string
}

func newStub() *stubProvider {
	return &stubProvider{
		reverse: make(map[Point][]Place),
		forward: make(map[string][]Place),
		gates:   make(map[any]chan struct{}),
	}
}

func (s *stubProvider) gate(key any) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{})
	s.gates[key] = ch
	return ch
}

func (s *stubProvider) wait(key any) {
	s.mu.Lock()
	ch := s.gates[key]
	s.calls++
	s.mu.Unlock()
	if ch != nil {
		<-ch
	}
}

func (s *stubProvider) ReverseGeocode(_ context.Context, p Point) ([]Place, error) {
	s.wait(p)
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.reverse[p], nil
}

func (s *stubProvider) Geocode(_ context.Context, address string) ([]Place, error) {
	s.wait(address)
	if s.err != nil {
		return nil, s.err
	}
	return s.forward[address], nil
}
