/*
profile.go - Sampling ranges and offer limits for a game

PURPOSE:
  A Profile captures every tunable number used to generate a round: the
  customer's demand and budget ranges, the worker pay ranges, whether the
  customer shows a budget hint, the slider limits an interactive front-end
  enforces, and the position catalog.

PRESETS:
  classic:     min_budget [10,15], max_budget [16,25], no hint, free offers
  marketplace: min_budget [8,15],  max_budget [16,30], budget hint shown,
               bill slider [10,30], pay slider [8,30], both defaulting to 15

INVARIANTS:
  MaxBudget.Min > MinBudget.Max, so every generated customer has
  min_budget < max_budget without re-sampling.

SEE ALSO:
  - factory/profile.go: JSON profile definitions
  - factory.go: Generation using a Profile
*/
package tycoon

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	ProfileClassic     = "classic"
	ProfileMarketplace = "marketplace"
)

// Profile holds the generation ranges for customers and workers.
type Profile struct {
	Name string

	WorkersNeeded IntRange
	DaysNeeded    IntRange
	MinBudget     IntRange
	MaxBudget     IntRange

	// ShowDisplayedBudget draws a hint in [min_budget, max_budget] per customer.
	ShowDisplayedBudget bool

	MinPay        IntRange
	MaxPayCeiling int

	Offer     OfferLimits
	Positions []Position
}

// Slider bounds one rate the way an input widget does.
type Slider struct {
	Min     decimal.Decimal
	Max     decimal.Decimal
	Default decimal.Decimal
}

// Contains reports whether v is within the slider bounds.
func (s Slider) Contains(v decimal.Decimal) bool {
	return v.GreaterThanOrEqual(s.Min) && v.LessThanOrEqual(s.Max)
}

// OfferLimits are enforced at the input boundary only. A nil slider leaves
// that rate unbounded.
type OfferLimits struct {
	BillRate *Slider
	PayRate  *Slider
}

// Check returns an *OfferError for the first rate outside its slider.
func (l OfferLimits) Check(billRate, payRate decimal.Decimal) error {
	if l.BillRate != nil && !l.BillRate.Contains(billRate) {
		return &OfferError{Field: "bill_rate", Value: billRate,
			Reason: fmt.Sprintf("must be between %s and %s", l.BillRate.Min, l.BillRate.Max)}
	}
	if l.PayRate != nil && !l.PayRate.Contains(payRate) {
		return &OfferError{Field: "pay_rate", Value: payRate,
			Reason: fmt.Sprintf("must be between %s and %s", l.PayRate.Min, l.PayRate.Max)}
	}
	return nil
}

// Validate checks range ordering and the disjoint budget ranges.
func (p Profile) Validate() error {
	ranges := []struct {
		name string
		r    IntRange
	}{
		{"workers_needed", p.WorkersNeeded},
		{"days_needed", p.DaysNeeded},
		{"min_budget", p.MinBudget},
		{"max_budget", p.MaxBudget},
		{"min_pay", p.MinPay},
	}
	for _, nr := range ranges {
		if !nr.r.Valid() {
			return fmt.Errorf("%w: %s range [%d,%d] is inverted", ErrInvalidProfile, nr.name, nr.r.Min, nr.r.Max)
		}
	}
	if p.WorkersNeeded.Min < 1 || p.DaysNeeded.Min < 1 {
		return fmt.Errorf("%w: workers_needed and days_needed must start at 1 or more", ErrInvalidProfile)
	}
	if p.MinBudget.Min < 1 {
		return fmt.Errorf("%w: min_budget must be positive", ErrInvalidProfile)
	}
	if p.MaxBudget.Min <= p.MinBudget.Max {
		return fmt.Errorf("%w: max_budget range must lie strictly above min_budget range", ErrInvalidProfile)
	}
	if p.MaxPayCeiling < p.MinPay.Max {
		return fmt.Errorf("%w: max_pay ceiling %d below min_pay range", ErrInvalidProfile, p.MaxPayCeiling)
	}
	for _, s := range []*Slider{p.Offer.BillRate, p.Offer.PayRate} {
		if s == nil {
			continue
		}
		if s.Min.GreaterThan(s.Max) || !s.Contains(s.Default) {
			return fmt.Errorf("%w: slider [%s,%s] default %s", ErrInvalidProfile, s.Min, s.Max, s.Default)
		}
	}
	return nil
}

// ClassicProfile is the original console game's ranges.
func ClassicProfile() Profile {
	return Profile{
		Name:          ProfileClassic,
		WorkersNeeded: Span(1, 50),
		DaysNeeded:    Span(1, 14),
		MinBudget:     Span(10, 15),
		MaxBudget:     Span(16, 25),
		MinPay:        Span(8, 14),
		MaxPayCeiling: 50,
	}
}

// MarketplaceProfile is the richer variant with a budget hint, sliders and
// position titles.
func MarketplaceProfile() Profile {
	return Profile{
		Name:                ProfileMarketplace,
		WorkersNeeded:       Span(1, 50),
		DaysNeeded:          Span(1, 14),
		MinBudget:           Span(8, 15),
		MaxBudget:           Span(16, 30),
		ShowDisplayedBudget: true,
		MinPay:              Span(8, 14),
		MaxPayCeiling:       50,
		Offer: OfferLimits{
			BillRate: &Slider{Min: Rate(10), Max: Rate(30), Default: Rate(15)},
			PayRate:  &Slider{Min: Rate(8), Max: Rate(30), Default: Rate(15)},
		},
		Positions: DefaultPositions(),
	}
}

// DefaultPositions is the built-in job title catalog.
func DefaultPositions() []Position {
	return []Position{
		{Name: "Event Staff", Icon: "event_staff", MinBudget: 8, MaxBudget: 18},
		{Name: "Warehouse Associate", Icon: "warehouse", MinBudget: 8, MaxBudget: 20},
		{Name: "Line Cook", Icon: "line_cook", MinBudget: 8, MaxBudget: 22},
		{Name: "Forklift Operator", Icon: "forklift", MinBudget: 10, MaxBudget: 24},
		{Name: "Welder", Icon: "welder", MinBudget: 12, MaxBudget: 30},
		{Name: "Electrician Helper", Icon: "electrician", MinBudget: 14, MaxBudget: 30},
		{Name: "General Laborer", Icon: "laborer", MinBudget: 8, MaxBudget: 30},
	}
}
