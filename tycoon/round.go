/*
round.go - Settlement of a single round

PURPOSE:
  Given a customer, the round's worker pool, and the player's offer, decide
  whether the customer signs, which workers show up, and what the round
  earns. Settle is pure; Session.PlayRound applies the result to the score.

ALGORITHM:
  1. Customer rejects the bill rate      -> outcome rejected, all money zero
  2. Filter workers that take the pay rate (order preserved)
  3. Nobody accepts                      -> outcome no_workers, all money zero
  4. hours    = accepted * days * 8
  5. earnings = round2((bill - pay) * hours)           (may be negative)
  6. max      = round2((max_budget - pay) * hours)
  7. percent  = round2(100 * earnings / max) if max > 0, else 0

Every outcome produces a RoundResult row so the round history is complete.
*/
package tycoon

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Outcome classifies how a round resolved.
type Outcome string

const (
	OutcomeSettled   Outcome = "settled"
	OutcomeRejected  Outcome = "rejected"
	OutcomeNoWorkers Outcome = "no_workers"
)

const (
	MessageRejected  = "Customer rejected the offer."
	MessageNoWorkers = "No workers accepted the offer."
)

var hundred = decimal.NewFromInt(100)

// Settlement is everything Settle decides about a round.
type Settlement struct {
	Outcome     Outcome
	Message     string
	Accepted    []Worker
	HoursWorked int
	Earnings    decimal.Decimal
	Result      RoundResult
}

// Settle resolves one round numbered roundNumber. It never fails: any finite
// rates are accepted, including offers that lose money.
func Settle(roundNumber int, customer Customer, workers []Worker, billRate, payRate decimal.Decimal) Settlement {
	result := RoundResult{
		RoundNumber:        roundNumber,
		MaxBillRate:        Rate(customer.MaxBudget),
		UsedBillRate:       billRate,
		WorkersNeeded:      customer.WorkersNeeded,
		MaxEarnings:        decimal.Zero,
		ActualEarnings:     decimal.Zero,
		PercentOfPotential: decimal.Zero,
	}

	if !customer.Accepts(billRate) {
		return Settlement{
			Outcome:  OutcomeRejected,
			Message:  MessageRejected,
			Earnings: decimal.Zero,
			Result:   result,
		}
	}

	accepted := AcceptingWorkers(workers, payRate)
	if len(accepted) == 0 {
		return Settlement{
			Outcome:  OutcomeNoWorkers,
			Message:  MessageNoWorkers,
			Accepted: accepted,
			Earnings: decimal.Zero,
			Result:   result,
		}
	}

	hours := len(accepted) * customer.DaysNeeded * HoursPerDay
	h := decimal.NewFromInt(int64(hours))
	earnings := RoundCents(billRate.Sub(payRate).Mul(h))
	maxEarnings := RoundCents(Rate(customer.MaxBudget).Sub(payRate).Mul(h))

	result.WorkersWorked = len(accepted)
	result.ActualEarnings = earnings
	result.MaxEarnings = maxEarnings
	result.PercentOfPotential = PercentOf(earnings, maxEarnings)

	return Settlement{
		Outcome:     OutcomeSettled,
		Message:     fmt.Sprintf("Round completed with %d workers. Earnings: %s", len(accepted), FormatMoney(earnings)),
		Accepted:    accepted,
		HoursWorked: hours,
		Earnings:    earnings,
		Result:      result,
	}
}

// PercentOf returns round2(100 * part / whole), or zero when whole <= 0.
func PercentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole).Round(2)
}
