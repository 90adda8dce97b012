/*
reaper.go - Idle game cleanup

PURPOSE:
  Games live in the store until the process exits. Players who walk away
  mid-game would otherwise pin memory forever, so the reaper periodically
  deletes games that have not been touched for IdleTTL.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Asks the store for games whose UpdatedAt is older than now - IdleTTL
  - Deletes each one; a game deleted concurrently is not an error

CONFIGURATION:
  - Interval: How often to check (default: 5 minutes)
  - IdleTTL:  How long a game may sit untouched (default: 2 hours)
  - Enabled:  Whether the reaper is active (default: true)

USAGE:
  reaper := NewReaper(store, logger)
  reaper.Start()
  // ... later
  reaper.Stop()

SEE ALSO:
  - tycoon/store.go: GameStore.ListIdle
*/
package api

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/warp/jobstack/logger"
	"github.com/warp/jobstack/metrics"
	"github.com/warp/jobstack/tycoon"
)

// Reaper deletes games that have been idle for longer than IdleTTL.
type Reaper struct {
	Store    tycoon.GameStore
	Log      *zap.Logger
	Interval time.Duration
	IdleTTL  time.Duration
	Enabled  bool
	Now      func() time.Time

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewReaper creates a reaper with default timings.
func NewReaper(store tycoon.GameStore, log *zap.Logger) *Reaper {
	if log == nil {
		log = logger.NewNop()
	}
	return &Reaper{
		Store:    store,
		Log:      log,
		Interval: 5 * time.Minute,
		IdleTTL:  2 * time.Hour,
		Enabled:  true,
		Now:      time.Now,
	}
}

// Start begins the reaper loop.
func (r *Reaper) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.Enabled {
		r.Log.Info("reaper disabled, not starting")
		return
	}
	if r.ticker != nil {
		return
	}

	r.ticker = time.NewTicker(r.Interval)
	r.stop = make(chan struct{})
	r.wg.Add(1)
	go r.run(r.ticker, r.stop)

	r.Log.Info("reaper started",
		zap.Duration("interval", r.Interval),
		zap.Duration("idle_ttl", r.IdleTTL),
	)
}

// Stop stops the reaper and waits for an in-flight sweep.
func (r *Reaper) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ticker == nil {
		return
	}
	r.ticker.Stop()
	close(r.stop)
	r.wg.Wait()
	r.ticker = nil
	r.Log.Info("reaper stopped")
}

func (r *Reaper) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer r.wg.Done()

	for {
		select {
		case <-ticker.C:
			r.RunNow(context.Background())
		case <-stop:
			return
		}
	}
}

// RunNow sweeps once and returns the number of games deleted.
func (r *Reaper) RunNow(ctx context.Context) int {
	cutoff := r.Now().Add(-r.IdleTTL)

	ids, err := r.Store.ListIdle(ctx, cutoff)
	if err != nil {
		r.Log.Error("listing idle games", zap.Error(err))
		return 0
	}

	deleted := 0
	for _, id := range ids {
		if err := r.Store.Delete(ctx, id); err != nil {
			if tycoon.IsNotFound(err) {
				continue
			}
			r.Log.Warn("deleting idle game", zap.String("game_id", string(id)), zap.Error(err))
			continue
		}
		deleted++
		metrics.GamesActive.Dec()
	}

	if deleted > 0 {
		r.Log.Info("reaped idle games",
			zap.Int("deleted", deleted),
			zap.Time("cutoff", cutoff),
		)
	}
	return deleted
}
