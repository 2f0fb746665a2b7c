package memory

import (
	"context"
	"sync"

	"nfo-bars/internal/domain"
	"nfo-bars/internal/storage"
)

// TickStore is an in-memory tick payload store keyed by trading day.
type TickStore struct {
	mu   sync.RWMutex
	days map[string]domain.TickMap
}

// NewTickStore creates an in-memory tick store.
func NewTickStore() *TickStore {
	return &TickStore{
		days: make(map[string]domain.TickMap),
	}
}

// Put replaces the tick payloads for a day.
func (s *TickStore) Put(day string, ticks domain.TickMap) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := make(domain.TickMap, len(ticks))
	for token, raw := range ticks {
		m[token] = append([]domain.RawTick(nil), raw...)
	}
	s.days[day] = m
}

// GetByDay returns the tick payloads for a day.
func (s *TickStore) GetByDay(ctx context.Context, day string) (domain.TickMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ticks, ok := s.days[day]
	if !ok {
		return nil, storage.ErrNotFound
	}
	m := make(domain.TickMap, len(ticks))
	for token, raw := range ticks {
		m[token] = append([]domain.RawTick(nil), raw...)
	}
	return m, nil
}

var _ storage.TickStore = (*TickStore)(nil)
