package runstore

import (
	"context"
	"sync"

	"github.com/driftworks/telephone/pkg/game"
)

// Memory is an in-memory Store for tests and throwaway runs.
type Memory struct {
	mu   sync.RWMutex
	runs map[string]*game.Session
}

// NewMemory creates an empty in-memory run store.
func NewMemory() *Memory {
	return &Memory{runs: make(map[string]*game.Session)}
}

// Save stores a copy of the session snapshot.
func (m *Memory) Save(_ context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[s.ID] = snapshot(s)
	return nil
}

// Get retrieves a run by ID.
func (m *Memory) Get(_ context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.runs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return snapshot(s), nil
}

// List returns all stored runs, newest first.
func (m *Memory) List(_ context.Context) ([]*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	runs := make([]*game.Session, 0, len(m.runs))
	for _, s := range m.runs {
		runs = append(runs, snapshot(s))
	}
	sortNewestFirst(runs)
	return runs, nil
}

// Delete removes a run. No error if the run does not exist.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.runs, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error {
	return nil
}

// snapshot copies a session so the store never shares mutable state with the
// run loop that produced it.
func snapshot(s *game.Session) *game.Session {
	cp := *s
	cp.Cycles = append([]game.CycleRecord(nil), s.Cycles...)
	return &cp
}
