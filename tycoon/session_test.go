package tycoon_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/jobstack/tycoon"
)

func TestNewSession_Empty(t *testing.T) {
	s := tycoon.NewSession()

	assertMoney(t, "0", s.Score())
	assert.Empty(t, s.Results())
	assert.Equal(t, 0, s.RoundsPlayed())
}

func TestSession_PlayRoundRecordsEveryOutcome(t *testing.T) {
	s := tycoon.NewSession()
	c := referenceCustomer()
	ws := workersWithMinPay(8, 9, 10)

	msg, earned := s.PlayRound(c, ws, dec("15"), dec("9"))
	assert.Equal(t, "Round completed with 2 workers. Earnings: $480.00", msg)
	assertMoney(t, "480", earned)

	msg, earned = s.PlayRound(c, ws, dec("25"), dec("9"))
	assert.Equal(t, tycoon.MessageRejected, msg)
	assertMoney(t, "0", earned)

	msg, earned = s.PlayRound(c, ws, dec("15"), dec("7"))
	assert.Equal(t, tycoon.MessageNoWorkers, msg)
	assertMoney(t, "0", earned)

	// THEN: score unchanged by rejection and zero acceptance, three rows kept
	assertMoney(t, "480", s.Score())
	rows := s.Results()
	require.Len(t, rows, 3)
	for i, r := range rows {
		assert.Equal(t, i+1, r.RoundNumber)
	}
	assert.Equal(t, 0, rows[1].WorkersWorked)
	assert.Equal(t, 0, rows[2].WorkersWorked)
}

func TestSession_ScoreIsExactSumOverFiveRounds(t *testing.T) {
	s := tycoon.NewSession()
	c := referenceCustomer()
	ws := workersWithMinPay(8, 9, 10)

	offers := [][2]string{
		{"15", "9"},      // 480
		{"10", "12"},     // 3 workers * 40h * -2 = -240
		{"20", "10"},     // 3 workers * 40h * 10 = 1200
		{"30", "8"},      // rejected
		{"12.5", "8.75"}, // 1 worker * 40h * 3.75 = 150
	}
	sum := decimal.Zero
	for _, o := range offers {
		_, earned := s.PlayRound(c, ws, dec(o[0]), dec(o[1]))
		sum = sum.Add(earned)
	}

	assertMoney(t, "1590", s.Score())
	assert.True(t, sum.Equal(s.Score()))
	assert.Equal(t, tycoon.RoundsPerGame, s.RoundsPlayed())

	summary := s.Summarize()
	assert.True(t, summary.Total.ActualEarnings.Equal(s.Score()), "totals row matches the score")
}

func TestSummarize_TotalPercentIsRecomputed(t *testing.T) {
	// GIVEN: one round at 54.55% and one rejected round at 0%
	s := tycoon.NewSession()
	c := referenceCustomer()
	ws := workersWithMinPay(8, 9, 10)
	s.PlayRound(c, ws, dec("15"), dec("9"))
	s.PlayRound(c, ws, dec("5"), dec("9"))

	// WHEN
	summary := s.Summarize()

	// THEN: 480 / 880 overall, not the 27.275 average of the rows
	require.Len(t, summary.Rows, 2)
	assert.Equal(t, 6, summary.Total.WorkersNeeded)
	assert.Equal(t, 2, summary.Total.WorkersWorked)
	assertMoney(t, "880", summary.Total.MaxEarnings)
	assertMoney(t, "480", summary.Total.ActualEarnings)
	assertMoney(t, "54.55", summary.Total.PercentOfPotential)

	// Summarize does not change the session
	assert.Equal(t, 2, s.RoundsPlayed())
}

func TestSummarize_NoPotential(t *testing.T) {
	s := tycoon.NewSession()
	s.PlayRound(referenceCustomer(), workersWithMinPay(8), dec("50"), dec("9"))

	summary := s.Summarize()

	assertMoney(t, "0", summary.Total.PercentOfPotential)
}

func TestSummaryTable(t *testing.T) {
	s := tycoon.NewSession()
	c := referenceCustomer()
	s.PlayRound(c, workersWithMinPay(8, 9, 10), dec("15"), dec("9"))

	table := s.Summarize().Table()

	require.Len(t, table, 3)
	assert.Equal(t, tycoon.SummaryHeader, table[0])
	assert.Equal(t, []string{"1", "$20.00", "$15.00", "3", "2", "$880.00", "$480.00", "54.55%"}, table[1])
	assert.Equal(t, []string{"Total", "", "", "3", "2", "$880.00", "$480.00", "54.55%"}, table[2])
}

func TestSessionReset(t *testing.T) {
	s := tycoon.NewSession()
	s.PlayRound(referenceCustomer(), workersWithMinPay(8), dec("15"), dec("9"))

	fresh := s.Reset()

	assertMoney(t, "0", fresh.Score())
	assert.Empty(t, fresh.Results())
	assert.Equal(t, 1, s.RoundsPlayed(), "old session is untouched")
}
