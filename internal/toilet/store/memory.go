// Package store persists toilet documents newest first. Documents are kept
// in whatever shape they were written in; the normalizer reconciles them
// on read.
package store

import (
	"context"
	"fmt"
	"sync"

	"looview/internal/toilet/models"
	"looview/pkg/platform/sentinel"
)

// InMemory is the default store. Prepend is the only mutation and it
// keeps the newest-first order with unique ids.
type InMemory struct {
	mu      sync.RWMutex
	records []models.StoredRecord
	ids     map[string]struct{}
}

// NewInMemory creates a store holding initial in the given order, which
// must already be newest first.
func NewInMemory(initial ...models.StoredRecord) *InMemory {
	s := &InMemory{ids: make(map[string]struct{}, len(initial))}
	for _, rec := range initial {
		if _, dup := s.ids[rec.ID]; dup {
			continue
		}
		s.ids[rec.ID] = struct{}{}
		s.records = append(s.records, rec)
	}
	return s
}

// Read returns a snapshot; later prepends never mutate it.
func (s *InMemory) Read(_ context.Context) ([]models.StoredRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.StoredRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Prepend inserts rec at the head of the list.
func (s *InMemory) Prepend(_ context.Context, rec models.StoredRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("prepend toilet: empty id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.ids[rec.ID]; dup {
		return fmt.Errorf("toilet %s: %w", rec.ID, sentinel.ErrConflict)
	}
	s.ids[rec.ID] = struct{}{}
	s.records = append([]models.StoredRecord{rec}, s.records...)
	return nil
}

// Len returns the number of stored documents.
func (s *InMemory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
