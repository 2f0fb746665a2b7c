package memory

import (
	"context"
	"sync"

	"nfo-bars/internal/domain"
	"nfo-bars/internal/storage"
)

// InstrumentStore is an in-memory instrument table keyed by trading day.
type InstrumentStore struct {
	mu   sync.RWMutex
	days map[string][]*domain.InstrumentRecord
}

// NewInstrumentStore creates an in-memory instrument store.
func NewInstrumentStore() *InstrumentStore {
	return &InstrumentStore{
		days: make(map[string][]*domain.InstrumentRecord),
	}
}

// Put replaces the instrument table for a day.
func (s *InstrumentStore) Put(day string, table []*domain.InstrumentRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Store copies to prevent external mutation
	records := make([]*domain.InstrumentRecord, len(table))
	for i, r := range table {
		rc := *r
		records[i] = &rc
	}
	s.days[day] = records
}

// GetByDay returns the instrument table for a day.
func (s *InstrumentStore) GetByDay(ctx context.Context, day string) ([]*domain.InstrumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table, ok := s.days[day]
	if !ok {
		return nil, storage.ErrNotFound
	}
	records := make([]*domain.InstrumentRecord, len(table))
	for i, r := range table {
		rc := *r
		records[i] = &rc
	}
	return records, nil
}

var _ storage.InstrumentStore = (*InstrumentStore)(nil)
