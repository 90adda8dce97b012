/*
Package sqlite provides a SQLite-backed implementation of tycoon.GameStore.

PURPOSE:
  Keeps games between HTTP requests. The default DSN is ":memory:", so games
  still live only as long as the process; a file path can be configured for
  local debugging.

KEY TABLES:
  games:          One row per game, current round state (mutable)
  round_results:  Settled rows per game generation (append-only)

APPEND-ONLY ENFORCEMENT:
  round_results rows are inserted with INSERT OR IGNORE keyed on
  (game_id, generation, round_number). A reset bumps the generation, so the
  previous run's rows are never rewritten. Rows only disappear when the whole
  game is deleted.

CONCURRENCY:
  Uses sync.RWMutex plus a single open connection. A ":memory:" database is
  private to its connection, so the pool must never open a second one.

USAGE:
  store, err := sqlite.New(":memory:")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - tycoon/store.go: Interface definition
  - tycoon/store/memory.go: In-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/jobstack/tycoon"
)

// timeLayout is fixed-width so timestamps compare correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store implements tycoon.GameStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex

	// Now is the clock used for timestamps.
	Now func() time.Time
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	dsn := dbPath + "?_foreign_keys=on"
	if dbPath != ":memory:" {
		dsn += "&_journal_mode=WAL"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db, Now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		profile TEXT NOT NULL,
		generation INTEGER NOT NULL DEFAULT 0,
		round INTEGER NOT NULL,
		phase TEXT NOT NULL,
		score TEXT NOT NULL,
		customer_json TEXT,
		workers_json TEXT,
		last_outcome TEXT,
		last_message TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_games_updated_at
		ON games(updated_at);

	-- Settled rounds (append-only per generation)
	CREATE TABLE IF NOT EXISTS round_results (
		game_id TEXT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
		generation INTEGER NOT NULL,
		round_number INTEGER NOT NULL,
		max_bill_rate TEXT NOT NULL,
		used_bill_rate TEXT NOT NULL,
		workers_needed INTEGER NOT NULL,
		workers_worked INTEGER NOT NULL,
		max_earnings TEXT NOT NULL,
		actual_earnings TEXT NOT NULL,
		percent_of_potential TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (game_id, generation, round_number)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// GAME STORE (tycoon.GameStore interface)
// =============================================================================

// Create inserts a new game and any rows it already carries.
func (s *Store) Create(ctx context.Context, g *tycoon.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now

	customerJSON, workersJSON, err := encodeDeal(g)
	if err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO games
			(id, profile, generation, round, phase, score, customer_json, workers_json,
			 last_outcome, last_message, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			string(g.ID), g.Profile, g.Generation, g.Round, string(g.Phase),
			g.Score().String(), customerJSON, workersJSON,
			string(g.LastOutcome), g.LastMessage,
			now.Format(timeLayout), now.Format(timeLayout),
		)
		if err != nil {
			if isUniqueConstraintError(err) {
				return fmt.Errorf("game %s already exists: %w", g.ID, err)
			}
			return fmt.Errorf("failed to insert game: %w", err)
		}
		return appendResults(ctx, tx, g, now)
	})
}

// Get loads a game with the rows of its current generation.
func (s *Store) Get(ctx context.Context, id tycoon.GameID) (*tycoon.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		g                         tycoon.Game
		gameID                    string
		phase, score, lastOutcome string
		customerJSON, workersJSON sql.NullString
		lastMessage               sql.NullString
		createdAt, updatedAt      string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, profile, generation, round, phase, score, customer_json, workers_json,
		       COALESCE(last_outcome, ''), last_message, created_at, updated_at
		FROM games WHERE id = ?
	`, string(id)).Scan(
		&gameID, &g.Profile, &g.Generation, &g.Round, &phase, &score,
		&customerJSON, &workersJSON, &lastOutcome, &lastMessage, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, tycoon.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}

	g.ID = tycoon.GameID(gameID)
	g.Phase = tycoon.Phase(phase)
	g.LastOutcome = tycoon.Outcome(lastOutcome)
	g.LastMessage = lastMessage.String
	g.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	g.UpdatedAt, _ = time.Parse(timeLayout, updatedAt)

	if customerJSON.Valid && customerJSON.String != "" {
		var c tycoon.Customer
		if err := json.Unmarshal([]byte(customerJSON.String), &c); err != nil {
			return nil, fmt.Errorf("failed to decode customer: %w", err)
		}
		g.Customer = &c
	}
	if workersJSON.Valid && workersJSON.String != "" {
		if err := json.Unmarshal([]byte(workersJSON.String), &g.Workers); err != nil {
			return nil, fmt.Errorf("failed to decode workers: %w", err)
		}
	}

	results, err := s.loadResults(ctx, g.ID, g.Generation)
	if err != nil {
		return nil, err
	}
	g.Session = tycoon.RestoreSession(parseDecimal(score), results)

	return &g, nil
}

// Save updates the game row and appends rows not stored yet.
func (s *Store) Save(ctx context.Context, g *tycoon.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now().UTC()
	customerJSON, workersJSON, err := encodeDeal(g)
	if err != nil {
		return err
	}

	err = s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE games SET
				profile = ?, generation = ?, round = ?, phase = ?, score = ?,
				customer_json = ?, workers_json = ?, last_outcome = ?, last_message = ?,
				updated_at = ?
			WHERE id = ?
		`,
			g.Profile, g.Generation, g.Round, string(g.Phase), g.Score().String(),
			customerJSON, workersJSON, string(g.LastOutcome), g.LastMessage,
			now.Format(timeLayout), string(g.ID),
		)
		if err != nil {
			return fmt.Errorf("failed to update game: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return tycoon.ErrGameNotFound
		}
		return appendResults(ctx, tx, g, now)
	})
	if err != nil {
		return err
	}

	g.UpdatedAt = now
	return nil
}

// Delete removes a game and its rows.
func (s *Store) Delete(ctx context.Context, id tycoon.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return tycoon.ErrGameNotFound
	}
	return nil
}

// ListIdle returns games last updated before the cutoff, oldest first.
func (s *Store) ListIdle(ctx context.Context, before time.Time) ([]tycoon.GameID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id FROM games WHERE updated_at < ? ORDER BY updated_at
	`, before.UTC().Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to list idle games: %w", err)
	}
	defer rows.Close()

	var ids []tycoon.GameID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, tycoon.GameID(id))
	}
	return ids, rows.Err()
}

// CountResults returns how many rows are stored for a game across all
// generations.
func (s *Store) CountResults(ctx context.Context, id tycoon.GameID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM round_results WHERE game_id = ?`, string(id)).Scan(&n)
	return n, err
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Store) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func appendResults(ctx context.Context, tx *sql.Tx, g *tycoon.Game, now time.Time) error {
	for _, r := range g.Session.Results() {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO round_results
			(game_id, generation, round_number, max_bill_rate, used_bill_rate,
			 workers_needed, workers_worked, max_earnings, actual_earnings,
			 percent_of_potential, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			string(g.ID), g.Generation, r.RoundNumber,
			r.MaxBillRate.String(), r.UsedBillRate.String(),
			r.WorkersNeeded, r.WorkersWorked,
			r.MaxEarnings.String(), r.ActualEarnings.String(),
			r.PercentOfPotential.String(),
			now.Format(timeLayout),
		)
		if err != nil {
			return fmt.Errorf("failed to append round %d: %w", r.RoundNumber, err)
		}
	}
	return nil
}

func (s *Store) loadResults(ctx context.Context, id tycoon.GameID, generation int) ([]tycoon.RoundResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT round_number, max_bill_rate, used_bill_rate, workers_needed, workers_worked,
		       max_earnings, actual_earnings, percent_of_potential
		FROM round_results
		WHERE game_id = ? AND generation = ?
		ORDER BY round_number
	`, string(id), generation)
	if err != nil {
		return nil, fmt.Errorf("failed to load round results: %w", err)
	}
	defer rows.Close()

	var results []tycoon.RoundResult
	for rows.Next() {
		var (
			r                                   tycoon.RoundResult
			maxBill, usedBill, maxEarn, actEarn string
			percent                             string
		)
		if err := rows.Scan(&r.RoundNumber, &maxBill, &usedBill, &r.WorkersNeeded, &r.WorkersWorked,
			&maxEarn, &actEarn, &percent); err != nil {
			return nil, err
		}
		r.MaxBillRate = parseDecimal(maxBill)
		r.UsedBillRate = parseDecimal(usedBill)
		r.MaxEarnings = parseDecimal(maxEarn)
		r.ActualEarnings = parseDecimal(actEarn)
		r.PercentOfPotential = parseDecimal(percent)
		results = append(results, r)
	}
	return results, rows.Err()
}

func encodeDeal(g *tycoon.Game) (sql.NullString, sql.NullString, error) {
	var customerJSON, workersJSON sql.NullString
	if g.Customer != nil {
		b, err := json.Marshal(g.Customer)
		if err != nil {
			return customerJSON, workersJSON, fmt.Errorf("failed to encode customer: %w", err)
		}
		customerJSON = sql.NullString{String: string(b), Valid: true}
	}
	if g.Workers != nil {
		b, err := json.Marshal(g.Workers)
		if err != nil {
			return customerJSON, workersJSON, fmt.Errorf("failed to encode workers: %w", err)
		}
		workersJSON = sql.NullString{String: string(b), Valid: true}
	}
	return customerJSON, workersJSON, nil
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "PRIMARY KEY"))
}
