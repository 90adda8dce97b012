package tycoon_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/jobstack/tycoon"
)

func newTestFactory() *tycoon.EntityFactory {
	return tycoon.NewEntityFactory(tycoon.MarketplaceProfile(), tycoon.NewSource(2024))
}

func TestGame_FullLifecycle(t *testing.T) {
	g := tycoon.NewGame(tycoon.NewGameID(), tycoon.ProfileMarketplace)
	f := newTestFactory()

	for round := 1; round <= tycoon.RoundsPerGame; round++ {
		require.Equal(t, round, g.Round)
		require.Equal(t, tycoon.PhaseAwaitingOffer, g.Phase)

		c, ws, err := g.Deal(f)
		require.NoError(t, err)
		assert.Len(t, ws, c.WorkersNeeded)

		st, err := g.SubmitOffer(tycoon.Rate(c.MaxBudget), tycoon.Rate(14))
		require.NoError(t, err)
		assert.Equal(t, tycoon.OutcomeSettled, st.Outcome, "max budget and top pay always settle")
		assert.Equal(t, tycoon.PhaseRoundResolved, g.Phase)
		assert.Equal(t, st.Message, g.LastMessage)

		require.NoError(t, g.Acknowledge())
	}

	assert.Equal(t, tycoon.PhaseGameOver, g.Phase)
	assert.Equal(t, tycoon.RoundsPerGame, g.Session.RoundsPlayed())
	assert.Nil(t, g.Customer)
}

func TestGame_DealIsStableWithinRound(t *testing.T) {
	g := tycoon.NewGame("g1", tycoon.ProfileMarketplace)
	f := newTestFactory()

	c1, ws1, err := g.Deal(f)
	require.NoError(t, err)
	c2, ws2, err := g.Deal(f)
	require.NoError(t, err)

	assert.Equal(t, c1, c2)
	assert.Equal(t, ws1, ws2)
}

func TestGame_OutOfOrderActions(t *testing.T) {
	g := tycoon.NewGame("g1", tycoon.ProfileClassic)
	f := tycoon.NewEntityFactory(tycoon.ClassicProfile(), tycoon.NewSource(1))

	// Offer before dealing
	_, err := g.SubmitOffer(tycoon.Rate(15), tycoon.Rate(10))
	assert.ErrorIs(t, err, tycoon.ErrRoundNotDealt)

	// Acknowledge before resolving
	assert.ErrorIs(t, g.Acknowledge(), tycoon.ErrRoundNotResolved)

	_, _, err = g.Deal(f)
	require.NoError(t, err)
	_, err = g.SubmitOffer(tycoon.Rate(15), tycoon.Rate(10))
	require.NoError(t, err)

	// Second offer in the same round
	_, err = g.SubmitOffer(tycoon.Rate(15), tycoon.Rate(10))
	assert.ErrorIs(t, err, tycoon.ErrRoundResolved)
	assert.True(t, tycoon.IsConflict(err))

	_, _, err = g.Deal(f)
	assert.ErrorIs(t, err, tycoon.ErrRoundResolved)
	assert.Equal(t, 1, g.Session.RoundsPlayed())
}

func TestGame_OverIsTerminalUntilReset(t *testing.T) {
	g := tycoon.NewGame("g1", tycoon.ProfileClassic)
	f := tycoon.NewEntityFactory(tycoon.ClassicProfile(), tycoon.NewSource(3))
	for i := 0; i < tycoon.RoundsPerGame; i++ {
		_, _, err := g.Deal(f)
		require.NoError(t, err)
		_, err = g.SubmitOffer(tycoon.Rate(5), tycoon.Rate(10))
		require.NoError(t, err)
		require.NoError(t, g.Acknowledge())
	}
	require.Equal(t, tycoon.PhaseGameOver, g.Phase)

	_, _, err := g.Deal(f)
	assert.ErrorIs(t, err, tycoon.ErrGameOver)
	_, err = g.SubmitOffer(tycoon.Rate(15), tycoon.Rate(10))
	assert.ErrorIs(t, err, tycoon.ErrGameOver)
	assert.ErrorIs(t, g.Acknowledge(), tycoon.ErrGameOver)

	// WHEN: reset
	g.Reset()

	// THEN: round 1 with a fresh session and the same identity
	assert.Equal(t, tycoon.GameID("g1"), g.ID)
	assert.Equal(t, 1, g.Generation)
	assert.Equal(t, 1, g.Round)
	assert.Equal(t, tycoon.PhaseAwaitingOffer, g.Phase)
	assert.Equal(t, 0, g.Session.RoundsPlayed())
	assertMoney(t, "0", g.Score())
}

func TestGame_CloneIsDeep(t *testing.T) {
	g := tycoon.NewGame("g1", tycoon.ProfileClassic)
	_, _, err := g.Deal(tycoon.NewEntityFactory(tycoon.ClassicProfile(), tycoon.NewSource(5)))
	require.NoError(t, err)

	cp := g.Clone()
	cp.Customer.MinBudget = 999
	cp.Workers[0].MinPay = 999
	_, err = cp.SubmitOffer(tycoon.Rate(15), tycoon.Rate(10))
	require.NoError(t, err)

	assert.NotEqual(t, 999, g.Customer.MinBudget)
	assert.NotEqual(t, 999, g.Workers[0].MinPay)
	assert.Equal(t, 0, g.Session.RoundsPlayed())
	assert.Equal(t, tycoon.PhaseAwaitingOffer, g.Phase)
}
