package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/jobstack/tycoon"
	"github.com/warp/jobstack/tycoon/store"
)

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	g := tycoon.NewGame("g1", tycoon.ProfileClassic)
	require.NoError(t, m.Create(ctx, g))

	_, _, err := g.Deal(tycoon.NewEntityFactory(tycoon.ClassicProfile(), tycoon.NewSource(11)))
	require.NoError(t, err)
	_, err = g.SubmitOffer(tycoon.Rate(16), tycoon.Rate(14))
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, g))

	loaded, err := m.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, tycoon.PhaseRoundResolved, loaded.Phase)
	assert.Equal(t, g.Session.Results(), loaded.Session.Results())
	assert.True(t, g.Score().Equal(loaded.Score()))
	assert.Equal(t, *g.Customer, *loaded.Customer)

	// Mutating the loaded copy does not touch the store
	require.NoError(t, loaded.Acknowledge())
	again, err := m.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, tycoon.PhaseRoundResolved, again.Phase)
}

func TestMemory_NotFound(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, tycoon.ErrGameNotFound)
	assert.ErrorIs(t, m.Save(ctx, tycoon.NewGame("missing", tycoon.ProfileClassic)), tycoon.ErrGameNotFound)
	assert.ErrorIs(t, m.Delete(ctx, "missing"), tycoon.ErrGameNotFound)
}

func TestMemory_ListIdle(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	m.Now = func() time.Time { return now }

	require.NoError(t, m.Create(ctx, tycoon.NewGame("old", tycoon.ProfileClassic)))
	now = base.Add(10 * time.Minute)
	require.NoError(t, m.Create(ctx, tycoon.NewGame("older-touch", tycoon.ProfileClassic)))
	now = base.Add(30 * time.Minute)
	require.NoError(t, m.Create(ctx, tycoon.NewGame("fresh", tycoon.ProfileClassic)))

	ids, err := m.ListIdle(ctx, base.Add(20*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, []tycoon.GameID{"old", "older-touch"}, ids)

	require.NoError(t, m.Delete(ctx, "old"))
	ids, err = m.ListIdle(ctx, base.Add(20*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, []tycoon.GameID{"older-touch"}, ids)
}
