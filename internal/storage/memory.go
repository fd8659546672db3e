package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/Mklevns/aletheia-phenom/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]model.RunRecord
	discoveries map[string][]model.DiscoveryRecord
	tickStats   map[string][]model.TickStats
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]model.RunRecord)
	s.discoveries = make(map[string][]model.DiscoveryRecord)
	s.tickStats = make(map[string][]model.TickStats)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context, limit int) ([]model.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]model.RunRecord, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAtUTC != runs[j].CreatedAtUTC {
			return runs[i].CreatedAtUTC > runs[j].CreatedAtUTC
		}
		return runs[i].ID < runs[j].ID
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

func (s *MemoryStore) AppendDiscoveries(_ context.Context, runID string, discoveries []model.DiscoveryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.discoveries[runID] = append(s.discoveries[runID], discoveries...)
	return nil
}

func (s *MemoryStore) GetDiscoveries(_ context.Context, runID string, limit int) ([]model.DiscoveryRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	discoveries, ok := s.discoveries[runID]
	if !ok {
		return nil, false, nil
	}
	if limit > 0 && len(discoveries) > limit {
		discoveries = discoveries[len(discoveries)-limit:]
	}
	copied := make([]model.DiscoveryRecord, len(discoveries))
	copy(copied, discoveries)
	return copied, true, nil
}

func (s *MemoryStore) SaveTickStats(_ context.Context, runID string, stats []model.TickStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]model.TickStats, len(stats))
	copy(copied, stats)
	s.tickStats[runID] = copied
	return nil
}

func (s *MemoryStore) GetTickStats(_ context.Context, runID string) ([]model.TickStats, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats, ok := s.tickStats[runID]
	if !ok {
		return nil, false, nil
	}
	copied := make([]model.TickStats, len(stats))
	copy(copied, stats)
	return copied, true, nil
}
