/*
errors.go - Centralized error types for the game

PURPOSE:
  The round rules never fail. Errors only come from the layers around them:
  driving the round state machine out of order, looking up a game that does
  not exist, or receiving an offer outside the front-end's limits.

ERROR CATEGORIES:
  1. Progression errors - action not allowed in the current phase
  2. Validation errors  - offer or profile rejected at the boundary
  3. Store errors       - unknown game

USAGE:
    if errors.Is(err, tycoon.ErrGameOver) {
        // offer a reset
    }

SEE ALSO:
  - game.go: Raises progression errors
  - profile.go: Raises validation errors
  - api/handlers.go: Maps errors to HTTP status codes
*/
package tycoon

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrGameNotFound is returned by stores for unknown game IDs.
	ErrGameNotFound = errors.New("game not found")

	// ErrGameOver is returned for any action other than reset after round 5.
	ErrGameOver = errors.New("game is over")

	// ErrRoundResolved is returned when an offer is submitted twice in a round.
	ErrRoundResolved = errors.New("round already resolved")

	// ErrRoundNotResolved is returned when acknowledging a round with no offer.
	ErrRoundNotResolved = errors.New("round not resolved yet")

	// ErrRoundNotDealt is returned when an offer arrives before the round's
	// customer and workers exist.
	ErrRoundNotDealt = errors.New("round has no customer yet")

	// ErrInvalidOffer is returned when a rate fails boundary validation.
	ErrInvalidOffer = errors.New("invalid offer")

	// ErrInvalidProfile is returned when a generation profile is malformed.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrUnknownProfile is returned when a profile name is not registered.
	ErrUnknownProfile = errors.New("unknown profile")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// OfferError describes a rejected rate.
type OfferError struct {
	Field  string
	Value  decimal.Decimal
	Reason string
}

func (e *OfferError) Error() string {
	return fmt.Sprintf("invalid offer: %s %s %s", e.Field, e.Value, e.Reason)
}

func (e *OfferError) Unwrap() error {
	return ErrInvalidOffer
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidOffer) ||
		errors.Is(err, ErrInvalidProfile) ||
		errors.Is(err, ErrUnknownProfile)
}

// IsConflict returns true if the action does not fit the game's phase.
func IsConflict(err error) bool {
	return errors.Is(err, ErrGameOver) ||
		errors.Is(err, ErrRoundResolved) ||
		errors.Is(err, ErrRoundNotResolved) ||
		errors.Is(err, ErrRoundNotDealt)
}

// IsNotFound returns true if the error indicates a missing game.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrGameNotFound)
}
