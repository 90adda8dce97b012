/*
store.go - Persistence interface for games

PURPOSE:
  Front-ends that serve many players keep each Game in a GameStore between
  requests. Games live for the lifetime of the process; the SQLite store
  defaults to an in-memory database.

KEY INTERFACES:
  GameStore: Create, Get, Save, Delete, ListIdle

ROUND HISTORY:
  Stores treat the round rows of a game generation as append-only. Save
  writes rows that are not stored yet and never rewrites older ones.

IMPLEMENTATIONS:
  - tycoon/store/memory.go: In-memory map
  - store/sqlite/sqlite.go: SQLite
*/
package tycoon

import (
	"context"
	"time"
)

// GameStore keeps games between requests.
type GameStore interface {
	// Create inserts a new game. CreatedAt and UpdatedAt are set by the store.
	Create(ctx context.Context, g *Game) error

	// Get loads a game. Returns ErrGameNotFound for unknown IDs.
	Get(ctx context.Context, id GameID) (*Game, error)

	// Save persists the game state and any new round rows.
	Save(ctx context.Context, g *Game) error

	// Delete removes a game. Returns ErrGameNotFound for unknown IDs.
	Delete(ctx context.Context, id GameID) error

	// ListIdle returns games whose UpdatedAt is before the cutoff.
	ListIdle(ctx context.Context, before time.Time) ([]GameID, error)
}
