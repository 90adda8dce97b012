/*
Package tycoon provides the core rules of the Jobstack Tycoon simulation.

PURPOSE:
  The player sits between a customer who needs workers for a number of days
  and a pool of workers who each want a minimum hourly pay. Every round the
  player proposes a bill rate and a pay rate; this package decides who
  accepts, settles the round, and keeps the running score for a five-round
  game.

KEY CONCEPTS IN THIS FILE (types.go):
  - Customer: demand side of a round (workers, days, budget interval)
  - Worker: supply side of a round (minimum acceptable pay)
  - RoundResult: the settled row recorded for every resolved round
  - Money helpers: all rates and earnings are decimal.Decimal

DESIGN PRINCIPLES:
  1. Precision: earnings are rounded to cents with decimal, never float64
  2. Immutability: customers, workers and result rows are values
  3. Determinism: all randomness flows through an injected Source
  4. Totality: the round rules accept any rate and never return errors

USAGE:
  f := tycoon.NewEntityFactory(tycoon.ClassicProfile(), tycoon.NewSource(42))
  customer := f.GenerateCustomer()
  workers := f.GenerateWorkers(customer.WorkersNeeded)

  session := tycoon.NewSession()
  msg, earnings := session.PlayRound(customer, workers, tycoon.Rate(15), tycoon.Rate(9))

SEE ALSO:
  - factory.go: Random entity generation
  - round.go: Round settlement rules
  - session.go: Score accumulation and summary
  - game.go: Round progression state machine
*/
package tycoon

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// HoursPerDay is the length of one billed working day.
const HoursPerDay = 8

// =============================================================================
// ENTITIES
// =============================================================================

// Customer needs WorkersNeeded workers for DaysNeeded days and pays any hourly
// bill rate inside [MinBudget, MaxBudget].
type Customer struct {
	WorkersNeeded int
	DaysNeeded    int
	MinBudget     int
	MaxBudget     int

	// DisplayedBudget is the hint shown to the player when the profile
	// enables it. It is never used for acceptance. Zero when hidden.
	DisplayedBudget int

	// Position is the job title for this customer, presentation only.
	Position Position
}

// HasDisplayedBudget reports whether the customer carries a budget hint.
func (c Customer) HasDisplayedBudget() bool {
	return c.DisplayedBudget > 0
}

// Worker accepts any pay rate at or above MinPay.
type Worker struct {
	MinPay int

	// MaxPay is generated for completeness and read by nothing in the rules.
	MaxPay int
}

// Position is a job title that fits a budget interval.
type Position struct {
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	MinBudget int    `json:"min_budget"`
	MaxBudget int    `json:"max_budget"`
}

// Fits reports whether a customer's budget interval lies inside the position's.
func (p Position) Fits(minBudget, maxBudget int) bool {
	return p.MinBudget <= minBudget && p.MaxBudget >= maxBudget
}

// IsZero reports whether no position was assigned.
func (p Position) IsZero() bool {
	return p.Name == ""
}

// =============================================================================
// ROUND RESULT - One row per resolved round
// =============================================================================

// RoundResult is the settled record of one round. It is appended to the
// session exactly once and never mutated.
type RoundResult struct {
	RoundNumber        int
	MaxBillRate        decimal.Decimal
	UsedBillRate       decimal.Decimal
	WorkersNeeded      int
	WorkersWorked      int
	MaxEarnings        decimal.Decimal
	ActualEarnings     decimal.Decimal
	PercentOfPotential decimal.Decimal
}

// =============================================================================
// MONEY
// =============================================================================

// Rate converts a whole-dollar hourly rate to a decimal.
func Rate(dollars int) decimal.Decimal {
	return decimal.NewFromInt(int64(dollars))
}

// RateFromFloat converts a fractional hourly rate to a decimal.
func RateFromFloat(dollars float64) decimal.Decimal {
	return decimal.NewFromFloat(dollars)
}

// RoundCents rounds a money value to two decimal places.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatMoney renders a money value as "$1234.50".
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatPercent renders a percentage as "54.55%".
func FormatPercent(d decimal.Decimal) string {
	return fmt.Sprintf("%s%%", d.StringFixed(2))
}
