package snapshotstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/fortune"
)

type dashboardRecord struct {
	payload   fortune.Dashboard
	expiresAt time.Time
}

// MemoryStore is an in-memory snapshot store for tests/dev.
type MemoryStore struct {
	mu         sync.RWMutex
	dashboards map[string]dashboardRecord
	tally      map[int]int64
	now        func() time.Time
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		dashboards: make(map[string]dashboardRecord),
		tally:      make(map[int]int64),
		now:        time.Now,
	}
}

// GetDashboard implements fortune.SnapshotStore.
func (s *MemoryStore) GetDashboard(_ context.Context, key string) (fortune.Dashboard, bool, error) {
	s.mu.RLock()
	record, ok := s.dashboards[key]
	s.mu.RUnlock()
	if !ok {
		return fortune.Dashboard{}, false, nil
	}
	if !record.expiresAt.IsZero() && !record.expiresAt.After(s.now()) {
		s.mu.Lock()
		delete(s.dashboards, key)
		s.mu.Unlock()
		return fortune.Dashboard{}, false, nil
	}
	return record.payload, true, nil
}

// SaveDashboard caches the dashboard. A non-positive ttl never expires.
func (s *MemoryStore) SaveDashboard(_ context.Context, key string, d fortune.Dashboard, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.dashboards[key] = dashboardRecord{payload: d, expiresAt: exp}
	return nil
}

// InvalidateAll drops every cached dashboard. Number tallies are kept.
func (s *MemoryStore) InvalidateAll(context.Context) error {
	s.mu.Lock()
	s.dashboards = make(map[string]dashboardRecord)
	s.mu.Unlock()
	return nil
}

// RecordNumbers bumps the recommendation counter of each number.
func (s *MemoryStore) RecordNumbers(_ context.Context, numbers []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range numbers {
		s.tally[n]++
	}
	return nil
}

// TopNumbers returns the most recommended numbers, ties broken by number.
func (s *MemoryStore) TopNumbers(_ context.Context, limit int) ([]fortune.NumberCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = len(s.tally)
	}
	items := make([]fortune.NumberCount, 0, len(s.tally))
	for n, c := range s.tally {
		items = append(items, fortune.NumberCount{Number: n, Count: c})
	}
	sortCounts(items)
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func sortCounts(items []fortune.NumberCount) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Number < items[j].Number
		}
		return items[i].Count > items[j].Count
	})
}

var _ fortune.SnapshotStore = (*MemoryStore)(nil)
