// Package store provides GameStore implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/jobstack/tycoon"
)

// =============================================================================
// MEMORY STORE - In-memory implementation
// =============================================================================

// Memory keeps games in a map. Games are cloned on the way in and out so
// callers never share state with the store.
type Memory struct {
	mu    sync.RWMutex
	games map[tycoon.GameID]*tycoon.Game

	// Now is the clock used for timestamps.
	Now func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		games: make(map[tycoon.GameID]*tycoon.Game),
		Now:   time.Now,
	}
}

func (m *Memory) Create(_ context.Context, g *tycoon.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	m.games[g.ID] = g.Clone()
	return nil
}

func (m *Memory) Get(_ context.Context, id tycoon.GameID) (*tycoon.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g, ok := m.games[id]
	if !ok {
		return nil, tycoon.ErrGameNotFound
	}
	return g.Clone(), nil
}

func (m *Memory) Save(_ context.Context, g *tycoon.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.games[g.ID]; !ok {
		return tycoon.ErrGameNotFound
	}
	g.UpdatedAt = m.Now().UTC()
	m.games[g.ID] = g.Clone()
	return nil
}

func (m *Memory) Delete(_ context.Context, id tycoon.GameID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.games[id]; !ok {
		return tycoon.ErrGameNotFound
	}
	delete(m.games, id)
	return nil
}

// ListIdle returns idle game IDs, oldest first.
func (m *Memory) ListIdle(_ context.Context, before time.Time) ([]tycoon.GameID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var idle []*tycoon.Game
	for _, g := range m.games {
		if g.UpdatedAt.Before(before) {
			idle = append(idle, g)
		}
	}
	sort.Slice(idle, func(i, j int) bool {
		return idle[i].UpdatedAt.Before(idle[j].UpdatedAt)
	})

	ids := make([]tycoon.GameID, len(idle))
	for i, g := range idle {
		ids[i] = g.ID
	}
	return ids, nil
}
