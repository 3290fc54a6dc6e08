package reminders

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Compile-time assertion.
var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory Store implementation for demo/testing.
type MemoryStore struct {
	reminders map[string]*Reminder
	mu        sync.RWMutex
}

// NewMemoryStore creates a new in-memory reminders store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reminders: make(map[string]*Reminder)}
}

func (m *MemoryStore) Create(_ context.Context, r *Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.reminders[r.ID] = &cp
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reminders[id]
	if !ok {
		return nil, ErrReminderNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MemoryStore) Update(_ context.Context, r *Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reminders[r.ID]; !ok {
		return ErrReminderNotFound
	}
	cp := *r
	m.reminders[r.ID] = &cp
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reminders[id]; !ok {
		return ErrReminderNotFound
	}
	delete(m.reminders, id)
	return nil
}

func (m *MemoryStore) ListByRep(_ context.Context, repID string, limit int) ([]*Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Reminder
	for _, r := range m.reminders {
		if r.RepID == repID {
			cp := *r
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DueAt.Before(result[j].DueAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MemoryStore) ListDueBefore(_ context.Context, cutoff time.Time, limit int) ([]*Reminder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*Reminder
	for _, r := range m.reminders {
		if r.Status == StatusPending && !r.DueAt.After(cutoff) {
			cp := *r
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DueAt.Before(result[j].DueAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
