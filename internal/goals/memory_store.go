package goals

import (
	"context"
	"sort"
	"sync"
)

// Compile-time assertion.
var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory Store implementation for demo/testing.
type MemoryStore struct {
	goals map[string]*Goal
	mu    sync.RWMutex
}

// NewMemoryStore creates a new in-memory goals store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{goals: make(map[string]*Goal)}
}

func (m *MemoryStore) Create(_ context.Context, goal *Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *goal
	m.goals[goal.ID] = &cp
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.goals[id]
	if !ok {
		return nil, ErrGoalNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *MemoryStore) GetByRepPeriod(_ context.Context, repID, period string) (*Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, g := range m.goals {
		if g.RepID == repID && g.Period == period {
			cp := *g
			return &cp, nil
		}
	}
	return nil, ErrGoalNotFound
}

func (m *MemoryStore) Update(_ context.Context, goal *Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[goal.ID]; !ok {
		return ErrGoalNotFound
	}
	cp := *goal
	m.goals[goal.ID] = &cp
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.goals[id]; !ok {
		return ErrGoalNotFound
	}
	delete(m.goals, id)
	return nil
}

func (m *MemoryStore) ListByRep(_ context.Context, repID string) ([]*Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Goal
	for _, g := range m.goals {
		if g.RepID == repID {
			cp := *g
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Period > result[j].Period
	})
	return result, nil
}
