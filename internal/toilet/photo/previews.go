// Package photo tracks transient preview references for images picked in
// the add-toilet form. A reference stays live until it is revoked, either
// because a newer image superseded it or because the form was closed.
package photo

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RefPrefix marks a local preview reference.
const RefPrefix = "blob:"

// ErrUnknownRef is returned for references that were never created or are
// already revoked.
var ErrUnknownRef = errors.New("unknown preview reference")

// Preview describes one selected image.
type Preview struct {
	Ref         string    `json:"ref"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Gauge receives the live reference count after every change.
type Gauge interface {
	SetPreviewsLive(n int)
}

// Previews is a concurrency-safe set of live preview references.
type Previews struct {
	mu    sync.Mutex
	live  map[string]Preview
	gauge Gauge
	now   func() time.Time
}

// Option configures Previews.
type Option func(*Previews)

// WithGauge reports the live count to g.
func WithGauge(g Gauge) Option {
	return func(p *Previews) { p.gauge = g }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(p *Previews) { p.now = now }
}

func New(opts ...Option) *Previews {
	p := &Previews{live: make(map[string]Preview), now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Create registers a new preview and returns it.
func (p *Previews) Create(fileName, contentType string, size int64) Preview {
	pv := Preview{
		Ref:         RefPrefix + uuid.NewString(),
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
		CreatedAt:   p.now(),
	}
	p.mu.Lock()
	p.live[pv.Ref] = pv
	n := len(p.live)
	p.mu.Unlock()
	p.report(n)
	return pv
}

// Replace revokes old (if any) and creates a new preview in its place.
func (p *Previews) Replace(old, fileName, contentType string, size int64) Preview {
	if old != "" {
		_ = p.Revoke(old)
	}
	return p.Create(fileName, contentType, size)
}

// Get returns a live preview.
func (p *Previews) Get(ref string) (Preview, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pv, ok := p.live[ref]
	return pv, ok
}

// Revoke releases ref. Revoking twice returns ErrUnknownRef.
func (p *Previews) Revoke(ref string) error {
	p.mu.Lock()
	_, ok := p.live[ref]
	delete(p.live, ref)
	n := len(p.live)
	p.mu.Unlock()
	if !ok {
		return ErrUnknownRef
	}
	p.report(n)
	return nil
}

// Live returns the number of unrevoked references.
func (p *Previews) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}

// IsPreviewRef reports whether ref looks like a local preview reference.
func IsPreviewRef(ref string) bool {
	return strings.HasPrefix(ref, RefPrefix)
}

func (p *Previews) report(n int) {
	if p.gauge != nil {
		p.gauge.SetPreviewsLive(n)
	}
}
