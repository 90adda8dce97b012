/*
Package factory provides JSON to Go generation profile conversion.

PURPOSE:
  Converts JSON profile definitions into tycoon.Profile values so new game
  variants can be tuned without code changes. The two built-in variants are
  available both as Go values (tycoon.ClassicProfile, tycoon.MarketplaceProfile)
  and as JSON (ClassicProfileJSON, MarketplaceProfileJSON).

JSON SCHEMA:
  {
    "name": "marketplace",
    "workers_needed": {"min": 1, "max": 50},
    "days_needed": {"min": 1, "max": 14},
    "min_budget": {"min": 8, "max": 15},
    "max_budget": {"min": 16, "max": 30},
    "show_displayed_budget": true,
    "min_pay": {"min": 8, "max": 14},
    "max_pay_ceiling": 50,
    "offer": {
      "bill_rate": {"min": 10, "max": 30, "default": 15},
      "pay_rate":  {"min": 8,  "max": 30, "default": 15}
    },
    "positions": [
      {"name": "Welder", "icon": "welder", "min_budget": 12, "max_budget": 30}
    ]
  }

DEFAULTS:
  Missing ranges fall back to the classic profile's ranges. A missing
  "offer" block leaves rates unbounded. Every parsed profile is validated.

USAGE:
  pf := factory.NewProfileFactory()
  profile, err := pf.ParseProfile(jsonString)

  // Built-ins by name
  profile, err := pf.Lookup("marketplace")

SEE ALSO:
  - tycoon/profile.go: Profile type and validation
*/
package factory

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/warp/jobstack/tycoon"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ProfileJSON is the JSON representation of a profile.
type ProfileJSON struct {
	Name                string         `json:"name"`
	WorkersNeeded       *RangeJSON     `json:"workers_needed,omitempty"`
	DaysNeeded          *RangeJSON     `json:"days_needed,omitempty"`
	MinBudget           *RangeJSON     `json:"min_budget,omitempty"`
	MaxBudget           *RangeJSON     `json:"max_budget,omitempty"`
	ShowDisplayedBudget bool           `json:"show_displayed_budget,omitempty"`
	MinPay              *RangeJSON     `json:"min_pay,omitempty"`
	MaxPayCeiling       int            `json:"max_pay_ceiling,omitempty"`
	Offer               *OfferJSON     `json:"offer,omitempty"`
	Positions           []PositionJSON `json:"positions,omitempty"`
}

// RangeJSON is an inclusive integer range.
type RangeJSON struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// OfferJSON holds optional slider limits.
type OfferJSON struct {
	BillRate *SliderJSON `json:"bill_rate,omitempty"`
	PayRate  *SliderJSON `json:"pay_rate,omitempty"`
}

// SliderJSON bounds one rate.
type SliderJSON struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

// PositionJSON is one catalog entry.
type PositionJSON struct {
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	MinBudget int    `json:"min_budget"`
	MaxBudget int    `json:"max_budget"`
}

// =============================================================================
// PROFILE FACTORY
// =============================================================================

// ProfileFactory converts JSON profiles to tycoon.Profile and keeps a
// registry of named profiles, seeded with the built-ins.
type ProfileFactory struct {
	mu       sync.RWMutex
	profiles map[string]tycoon.Profile
}

// NewProfileFactory creates a factory with the classic and marketplace
// profiles registered.
func NewProfileFactory() *ProfileFactory {
	return &ProfileFactory{
		profiles: map[string]tycoon.Profile{
			tycoon.ProfileClassic:     tycoon.ClassicProfile(),
			tycoon.ProfileMarketplace: tycoon.MarketplaceProfile(),
		},
	}
}

// ParseProfile parses a JSON string into a validated Profile.
func (f *ProfileFactory) ParseProfile(jsonStr string) (tycoon.Profile, error) {
	var pj ProfileJSON
	if err := json.Unmarshal([]byte(jsonStr), &pj); err != nil {
		return tycoon.Profile{}, fmt.Errorf("%w: failed to parse profile JSON: %v", tycoon.ErrInvalidProfile, err)
	}
	return f.FromJSON(pj)
}

// LoadFile parses a profile file and registers it under its name.
func (f *ProfileFactory) LoadFile(path string) (tycoon.Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return tycoon.Profile{}, fmt.Errorf("failed to read profile file: %w", err)
	}
	p, err := f.ParseProfile(string(b))
	if err != nil {
		return tycoon.Profile{}, err
	}
	f.Register(p)
	return p, nil
}

// FromJSON converts ProfileJSON to a validated tycoon.Profile.
func (f *ProfileFactory) FromJSON(pj ProfileJSON) (tycoon.Profile, error) {
	if pj.Name == "" {
		return tycoon.Profile{}, fmt.Errorf("%w: name is required", tycoon.ErrInvalidProfile)
	}

	base := tycoon.ClassicProfile()
	p := tycoon.Profile{
		Name:                pj.Name,
		WorkersNeeded:       parseRange(pj.WorkersNeeded, base.WorkersNeeded),
		DaysNeeded:          parseRange(pj.DaysNeeded, base.DaysNeeded),
		MinBudget:           parseRange(pj.MinBudget, base.MinBudget),
		MaxBudget:           parseRange(pj.MaxBudget, base.MaxBudget),
		ShowDisplayedBudget: pj.ShowDisplayedBudget,
		MinPay:              parseRange(pj.MinPay, base.MinPay),
		MaxPayCeiling:       base.MaxPayCeiling,
	}
	if pj.MaxPayCeiling > 0 {
		p.MaxPayCeiling = pj.MaxPayCeiling
	}
	if pj.Offer != nil {
		p.Offer = tycoon.OfferLimits{
			BillRate: parseSlider(pj.Offer.BillRate),
			PayRate:  parseSlider(pj.Offer.PayRate),
		}
	}
	for _, pos := range pj.Positions {
		p.Positions = append(p.Positions, tycoon.Position(pos))
	}

	if err := p.Validate(); err != nil {
		return tycoon.Profile{}, err
	}
	return p, nil
}

// ToJSON converts a Profile to ProfileJSON.
func (f *ProfileFactory) ToJSON(p tycoon.Profile) ProfileJSON {
	pj := ProfileJSON{
		Name:                p.Name,
		WorkersNeeded:       toRange(p.WorkersNeeded),
		DaysNeeded:          toRange(p.DaysNeeded),
		MinBudget:           toRange(p.MinBudget),
		MaxBudget:           toRange(p.MaxBudget),
		ShowDisplayedBudget: p.ShowDisplayedBudget,
		MinPay:              toRange(p.MinPay),
		MaxPayCeiling:       p.MaxPayCeiling,
	}
	if p.Offer.BillRate != nil || p.Offer.PayRate != nil {
		pj.Offer = &OfferJSON{
			BillRate: toSlider(p.Offer.BillRate),
			PayRate:  toSlider(p.Offer.PayRate),
		}
	}
	for _, pos := range p.Positions {
		pj.Positions = append(pj.Positions, PositionJSON(pos))
	}
	return pj
}

// Register adds or replaces a named profile.
func (f *ProfileFactory) Register(p tycoon.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.Name] = p
}

// Lookup returns a registered profile by name.
func (f *ProfileFactory) Lookup(name string) (tycoon.Profile, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	p, ok := f.profiles[name]
	if !ok {
		return tycoon.Profile{}, fmt.Errorf("%w: %q", tycoon.ErrUnknownProfile, name)
	}
	return p, nil
}

// Names returns the registered profile names, sorted.
func (f *ProfileFactory) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.profiles))
	for name := range f.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// PARSING HELPERS
// =============================================================================

func parseRange(r *RangeJSON, fallback tycoon.IntRange) tycoon.IntRange {
	if r == nil {
		return fallback
	}
	return tycoon.Span(r.Min, r.Max)
}

func parseSlider(s *SliderJSON) *tycoon.Slider {
	if s == nil {
		return nil
	}
	return &tycoon.Slider{
		Min:     decimal.NewFromFloat(s.Min),
		Max:     decimal.NewFromFloat(s.Max),
		Default: decimal.NewFromFloat(s.Default),
	}
}

func toRange(r tycoon.IntRange) *RangeJSON {
	return &RangeJSON{Min: r.Min, Max: r.Max}
}

func toSlider(s *tycoon.Slider) *SliderJSON {
	if s == nil {
		return nil
	}
	return &SliderJSON{
		Min:     s.Min.InexactFloat64(),
		Max:     s.Max.InexactFloat64(),
		Default: s.Default.InexactFloat64(),
	}
}
