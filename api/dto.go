/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the tycoon domain model from the external API contract. Money values are
  sent twice: as plain numbers for clients that compute, and as display
  strings ("$480.00", "54.55%") for clients that only render.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

CUSTOMER VISIBILITY:
  Profiles that show a budget hint expose only displayed_budget; the real
  [min_budget, max_budget] interval stays hidden. Profiles without a hint
  expose the interval, as the classic console game did.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/profile.go: ProfileJSON type
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/jobstack/factory"
	"github.com/warp/jobstack/tycoon"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CreateGameRequest is the optional body of POST /api/games.
type CreateGameRequest struct {
	Profile string `json:"profile,omitempty"`
}

// OfferRequest is the player's offer for the current round.
type OfferRequest struct {
	BillRate *float64 `json:"bill_rate"`
	PayRate  *float64 `json:"pay_rate"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// GameDTO is the player's view of a game.
type GameDTO struct {
	ID           string          `json:"id"`
	Profile      string          `json:"profile"`
	Round        int             `json:"round"`
	TotalRounds  int             `json:"total_rounds"`
	Phase        string          `json:"phase"`
	Score        float64         `json:"score"`
	ScoreDisplay string          `json:"score_display"`
	RoundsPlayed int             `json:"rounds_played"`
	Customer     *CustomerDTO    `json:"customer,omitempty"`
	Offer        *OfferLimitsDTO `json:"offer_limits,omitempty"`
	LastOutcome  string          `json:"last_outcome,omitempty"`
	LastMessage  string          `json:"last_message,omitempty"`
	UpdatedAt    string          `json:"updated_at,omitempty"`
}

// CustomerDTO describes the current round's customer.
type CustomerDTO struct {
	WorkersNeeded   int    `json:"workers_needed"`
	DaysNeeded      int    `json:"days_needed"`
	DisplayedBudget *int   `json:"displayed_budget,omitempty"`
	MinBudget       *int   `json:"min_budget,omitempty"`
	MaxBudget       *int   `json:"max_budget,omitempty"`
	Position        string `json:"position,omitempty"`
	PositionIcon    string `json:"position_icon,omitempty"`
}

// SliderDTO bounds one rate input.
type SliderDTO struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

// OfferLimitsDTO carries the input limits for the offer form.
type OfferLimitsDTO struct {
	BillRate *SliderDTO `json:"bill_rate,omitempty"`
	PayRate  *SliderDTO `json:"pay_rate,omitempty"`
}

// RoundResultDTO is one summary row.
type RoundResultDTO struct {
	Round              int     `json:"round"`
	MaxBillRate        float64 `json:"max_bill_rate"`
	UsedBillRate       float64 `json:"used_bill_rate"`
	WorkersNeeded      int     `json:"workers_needed"`
	WorkersWorked      int     `json:"workers_worked"`
	MaxEarnings        float64 `json:"max_earnings"`
	ActualEarnings     float64 `json:"actual_earnings"`
	PercentOfPotential float64 `json:"percent_of_potential"`
}

// TotalsDTO is the summary's totals row.
type TotalsDTO struct {
	WorkersNeeded      int     `json:"workers_needed"`
	WorkersWorked      int     `json:"workers_worked"`
	MaxEarnings        float64 `json:"max_earnings"`
	ActualEarnings     float64 `json:"actual_earnings"`
	PercentOfPotential float64 `json:"percent_of_potential"`
}

// OfferResultDTO is the response to a submitted offer.
type OfferResultDTO struct {
	Outcome         string         `json:"outcome"`
	Message         string         `json:"message"`
	Earnings        float64        `json:"earnings"`
	EarningsDisplay string         `json:"earnings_display"`
	Result          RoundResultDTO `json:"result"`
	Game            GameDTO        `json:"game"`
}

// SummaryDTO is the end-of-game table.
type SummaryDTO struct {
	GameID       string           `json:"game_id"`
	GameOver     bool             `json:"game_over"`
	FinalScore   float64          `json:"final_score"`
	ScoreDisplay string           `json:"score_display"`
	Rows         []RoundResultDTO `json:"rows"`
	Total        TotalsDTO        `json:"total"`
	Table        [][]string       `json:"table"`
}

// ProfileDTO represents a generation profile.
type ProfileDTO struct {
	Name    string              `json:"name"`
	Default bool                `json:"default"`
	Config  factory.ProfileJSON `json:"config"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toGameDTO(g *tycoon.Game, profile tycoon.Profile) GameDTO {
	dto := GameDTO{
		ID:           string(g.ID),
		Profile:      g.Profile,
		Round:        g.Round,
		TotalRounds:  tycoon.RoundsPerGame,
		Phase:        string(g.Phase),
		Score:        f64(g.Score()),
		ScoreDisplay: tycoon.FormatMoney(g.Score()),
		RoundsPlayed: g.Session.RoundsPlayed(),
		LastOutcome:  string(g.LastOutcome),
		LastMessage:  g.LastMessage,
		Offer:        toOfferLimitsDTO(profile.Offer),
	}
	if !g.UpdatedAt.IsZero() {
		dto.UpdatedAt = g.UpdatedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	if g.Customer != nil {
		dto.Customer = toCustomerDTO(*g.Customer)
	}
	return dto
}

func toCustomerDTO(c tycoon.Customer) *CustomerDTO {
	dto := &CustomerDTO{
		WorkersNeeded: c.WorkersNeeded,
		DaysNeeded:    c.DaysNeeded,
		Position:      c.Position.Name,
		PositionIcon:  c.Position.Icon,
	}
	if c.HasDisplayedBudget() {
		displayed := c.DisplayedBudget
		dto.DisplayedBudget = &displayed
	} else {
		lo, hi := c.MinBudget, c.MaxBudget
		dto.MinBudget = &lo
		dto.MaxBudget = &hi
	}
	return dto
}

func toOfferLimitsDTO(l tycoon.OfferLimits) *OfferLimitsDTO {
	if l.BillRate == nil && l.PayRate == nil {
		return nil
	}
	return &OfferLimitsDTO{
		BillRate: toSliderDTO(l.BillRate),
		PayRate:  toSliderDTO(l.PayRate),
	}
}

func toSliderDTO(s *tycoon.Slider) *SliderDTO {
	if s == nil {
		return nil
	}
	return &SliderDTO{
		Min:     s.Min.InexactFloat64(),
		Max:     s.Max.InexactFloat64(),
		Default: s.Default.InexactFloat64(),
	}
}

func toRoundResultDTO(r tycoon.RoundResult) RoundResultDTO {
	return RoundResultDTO{
		Round:              r.RoundNumber,
		MaxBillRate:        f64(r.MaxBillRate),
		UsedBillRate:       f64(r.UsedBillRate),
		WorkersNeeded:      r.WorkersNeeded,
		WorkersWorked:      r.WorkersWorked,
		MaxEarnings:        f64(r.MaxEarnings),
		ActualEarnings:     f64(r.ActualEarnings),
		PercentOfPotential: f64(r.PercentOfPotential),
	}
}

func toSummaryDTO(g *tycoon.Game) SummaryDTO {
	summary := g.Session.Summarize()
	rows := make([]RoundResultDTO, len(summary.Rows))
	for i, r := range summary.Rows {
		rows[i] = toRoundResultDTO(r)
	}
	return SummaryDTO{
		GameID:       string(g.ID),
		GameOver:     g.Phase == tycoon.PhaseGameOver,
		FinalScore:   f64(g.Score()),
		ScoreDisplay: tycoon.FormatMoney(g.Score()),
		Rows:         rows,
		Total: TotalsDTO{
			WorkersNeeded:      summary.Total.WorkersNeeded,
			WorkersWorked:      summary.Total.WorkersWorked,
			MaxEarnings:        f64(summary.Total.MaxEarnings),
			ActualEarnings:     f64(summary.Total.ActualEarnings),
			PercentOfPotential: f64(summary.Total.PercentOfPotential),
		},
		Table: summary.Table(),
	}
}

func f64(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
