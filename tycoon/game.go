/*
game.go - Round progression for one player

PURPOSE:
  Game drives a Session through the fixed five-round lifecycle used by the
  interactive front-ends. It replaces ambient per-user state with an explicit
  object that can be stored, loaded and reset.

STATE MACHINE:
  AwaitingOffer --SubmitOffer--> RoundResolved --Acknowledge--> AwaitingOffer
                                 (round < 5)
  RoundResolved --Acknowledge--> GameOver                        (round == 5)
  any           --Reset-------> AwaitingOffer, round 1, fresh session

  GameOver is terminal apart from Reset.

DEALING:
  Deal generates the round's customer and worker pool once. Calling it again
  in the same round returns the same entities, so a page refresh does not
  re-roll the customer.
*/
package tycoon

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GameID identifies a game in a store.
type GameID string

// NewGameID returns a random game identifier.
func NewGameID() GameID {
	return GameID(uuid.NewString())
}

// Phase is a state of the round lifecycle.
type Phase string

const (
	PhaseAwaitingOffer Phase = "awaiting_offer"
	PhaseRoundResolved Phase = "round_resolved"
	PhaseGameOver      Phase = "game_over"
)

// Game is one player's game. Fields are exported for stores; use the methods
// to change state.
type Game struct {
	ID      GameID
	Profile string

	// Generation increments on every reset so stored rows of an abandoned
	// run are never mixed with the new one.
	Generation int

	Round   int
	Phase   Phase
	Session *Session

	Customer *Customer
	Workers  []Worker

	LastOutcome Outcome
	LastMessage string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewGame creates a game at round 1 awaiting an offer.
func NewGame(id GameID, profile string) *Game {
	return &Game{
		ID:      id,
		Profile: profile,
		Round:   1,
		Phase:   PhaseAwaitingOffer,
		Session: NewSession(),
	}
}

// Score is the session's running score.
func (g *Game) Score() decimal.Decimal {
	return g.Session.Score()
}

// Dealt reports whether the current round has a customer.
func (g *Game) Dealt() bool {
	return g.Customer != nil
}

// Deal seeds the current round from the factory, once per round.
func (g *Game) Deal(f *EntityFactory) (Customer, []Worker, error) {
	switch g.Phase {
	case PhaseGameOver:
		return Customer{}, nil, ErrGameOver
	case PhaseRoundResolved:
		return Customer{}, nil, ErrRoundResolved
	}
	if g.Customer == nil {
		c := f.GenerateCustomer()
		g.Customer = &c
		g.Workers = f.GenerateWorkers(c.WorkersNeeded)
	}
	return *g.Customer, g.Workers, nil
}

// SubmitOffer settles the current round with the player's rates.
func (g *Game) SubmitOffer(billRate, payRate decimal.Decimal) (Settlement, error) {
	switch g.Phase {
	case PhaseGameOver:
		return Settlement{}, ErrGameOver
	case PhaseRoundResolved:
		return Settlement{}, ErrRoundResolved
	}
	if g.Customer == nil {
		return Settlement{}, ErrRoundNotDealt
	}

	st := g.Session.Apply(*g.Customer, g.Workers, billRate, payRate)
	g.Phase = PhaseRoundResolved
	g.LastOutcome = st.Outcome
	g.LastMessage = st.Message
	return st, nil
}

// Acknowledge closes a resolved round, advancing to the next round or ending
// the game after the last one.
func (g *Game) Acknowledge() error {
	switch g.Phase {
	case PhaseGameOver:
		return ErrGameOver
	case PhaseAwaitingOffer:
		return ErrRoundNotResolved
	}

	g.Customer = nil
	g.Workers = nil
	if g.Round >= RoundsPerGame {
		g.Phase = PhaseGameOver
		return nil
	}
	g.Round++
	g.Phase = PhaseAwaitingOffer
	g.LastOutcome = ""
	g.LastMessage = ""
	return nil
}

// Reset starts the game over at round 1 with a fresh session. The ID and
// profile are kept.
func (g *Game) Reset() {
	g.Generation++
	g.Round = 1
	g.Phase = PhaseAwaitingOffer
	g.Session = g.Session.Reset()
	g.Customer = nil
	g.Workers = nil
	g.LastOutcome = ""
	g.LastMessage = ""
}

// Clone returns a deep copy for stores that must not share memory with callers.
func (g *Game) Clone() *Game {
	cp := *g
	cp.Session = RestoreSession(g.Session.Score(), g.Session.Results())
	if g.Customer != nil {
		c := *g.Customer
		cp.Customer = &c
	}
	if g.Workers != nil {
		cp.Workers = append([]Worker(nil), g.Workers...)
	}
	return &cp
}
