package tycoon

import "github.com/shopspring/decimal"

// RoundsPerGame is the fixed length of a game.
const RoundsPerGame = 5

// Session accumulates the score and the ordered round history of one game.
// It is owned by a single caller; nothing in it is synchronized.
type Session struct {
	score   decimal.Decimal
	results []RoundResult
}

// NewSession returns an empty session with a zero score.
func NewSession() *Session {
	return &Session{score: decimal.Zero}
}

// RestoreSession rebuilds a session from stored state.
func RestoreSession(score decimal.Decimal, results []RoundResult) *Session {
	return &Session{score: score, results: append([]RoundResult(nil), results...)}
}

// Score is the sum of every recorded round's earnings.
func (s *Session) Score() decimal.Decimal {
	return s.score
}

// Results returns a copy of the round history.
func (s *Session) Results() []RoundResult {
	return append([]RoundResult(nil), s.results...)
}

// RoundsPlayed is the number of recorded rounds.
func (s *Session) RoundsPlayed() int {
	return len(s.results)
}

// PlayRound settles the next round, records its row and adds its earnings to
// the score. It returns the player-facing message and the round's earnings.
func (s *Session) PlayRound(customer Customer, workers []Worker, billRate, payRate decimal.Decimal) (string, decimal.Decimal) {
	st := s.Apply(customer, workers, billRate, payRate)
	return st.Message, st.Earnings
}

// Apply is PlayRound returning the full settlement.
func (s *Session) Apply(customer Customer, workers []Worker, billRate, payRate decimal.Decimal) Settlement {
	st := Settle(len(s.results)+1, customer, workers, billRate, payRate)
	s.score = s.score.Add(st.Earnings)
	s.results = append(s.results, st.Result)
	return st
}

// Reset returns a fresh session. The receiver is left untouched.
func (s *Session) Reset() *Session {
	return NewSession()
}
