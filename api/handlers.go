/*
handlers.go - HTTP API handlers for Jobstack Tycoon

PURPOSE:
  Exposes the round state machine as a REST API so a form-based client can
  play: create a game, read the current customer, submit an offer,
  acknowledge the result, and read the final summary.

ENDPOINTS:
  Games:
    POST   /api/games                 Create a game (first round dealt)
    GET    /api/games/{id}            Current state and customer
    DELETE /api/games/{id}            Drop a game
    POST   /api/games/{id}/offer      Submit {bill_rate, pay_rate}
    POST   /api/games/{id}/ack        Close the resolved round
    POST   /api/games/{id}/reset      Start over at round 1
    GET    /api/games/{id}/summary    Per-round rows plus totals

  Profiles:
    GET    /api/profiles              Registered generation profiles

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (offer limits live here, not in the round rules)
  3. Load game, apply state machine transition, save game
  4. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid body, missing or out-of-range rates, unknown profile
  - 404: Unknown game
  - 409: Action not allowed in the current phase
  - 500: Store failures

CONCURRENCY:
  Mutating handlers hold Handler.mu for the whole load-change-save cycle and
  for every draw from the shared random source.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/jobstack/factory"
	"github.com/warp/jobstack/logger"
	"github.com/warp/jobstack/metrics"
	"github.com/warp/jobstack/tycoon"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store          tycoon.GameStore
	Profiles       *factory.ProfileFactory
	DefaultProfile string
	Log            *zap.Logger

	mu  sync.Mutex
	src tycoon.Source
}

// NewHandler creates a new handler. src is shared by every game and must only
// be used under h.mu.
func NewHandler(store tycoon.GameStore, profiles *factory.ProfileFactory, defaultProfile string, src tycoon.Source, log *zap.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		Store:          store,
		Profiles:       profiles,
		DefaultProfile: defaultProfile,
		Log:            log,
		src:            src,
	}
}

// =============================================================================
// GAME HANDLERS
// =============================================================================

// CreateGame starts a new game and deals its first round.
// POST /api/games
func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	name := req.Profile
	if name == "" {
		name = h.DefaultProfile
	}
	profile, err := h.Profiles.Lookup(name)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	g := tycoon.NewGame(tycoon.NewGameID(), profile.Name)
	if _, _, err := g.Deal(tycoon.NewEntityFactory(profile, h.src)); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Store.Create(r.Context(), g); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create game", err)
		return
	}

	metrics.GamesStarted.Inc()
	metrics.GamesActive.Inc()
	h.logger(r).Info("game created",
		zap.String("game_id", string(g.ID)),
		zap.String("profile", profile.Name),
		zap.Int("workers_needed", g.Customer.WorkersNeeded),
	)

	writeJSON(w, http.StatusCreated, toGameDTO(g, profile))
}

// GetGame returns the player's view of a game.
// GET /api/games/{id}
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	g, profile, err := h.load(r.Context(), gameID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGameDTO(g, profile))
}

// DeleteGame drops a game from the store.
// DELETE /api/games/{id}
func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.Store.Delete(r.Context(), gameID(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	metrics.GamesActive.Dec()
	w.WriteHeader(http.StatusNoContent)
}

// SubmitOffer settles the current round.
// POST /api/games/{id}/offer
func (h *Handler) SubmitOffer(w http.ResponseWriter, r *http.Request) {
	var req OfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	billRate, payRate, err := parseOffer(req)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := r.Context()
	g, profile, err := h.load(ctx, gameID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := profile.Offer.Check(billRate, payRate); err != nil {
		writeDomainError(w, err)
		return
	}

	st, err := g.SubmitOffer(billRate, payRate)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Store.Save(ctx, g); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save game", err)
		return
	}

	metrics.RoundsPlayed.WithLabelValues(string(st.Outcome)).Inc()
	metrics.RoundEarnings.Observe(f64(st.Earnings))
	h.logger(r).Info("offer submitted",
		zap.String("game_id", string(g.ID)),
		zap.Int("round", g.Round),
		zap.String("bill_rate", billRate.String()),
		zap.String("pay_rate", payRate.String()),
		zap.String("outcome", string(st.Outcome)),
		zap.Int("workers_worked", st.Result.WorkersWorked),
		zap.String("earnings", st.Earnings.StringFixed(2)),
		zap.String("score", g.Score().StringFixed(2)),
	)

	writeJSON(w, http.StatusOK, OfferResultDTO{
		Outcome:         string(st.Outcome),
		Message:         st.Message,
		Earnings:        f64(st.Earnings),
		EarningsDisplay: tycoon.FormatMoney(st.Earnings),
		Result:          toRoundResultDTO(st.Result),
		Game:            toGameDTO(g, profile),
	})
}

// Acknowledge closes the resolved round and deals the next one.
// POST /api/games/{id}/ack
func (h *Handler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := r.Context()
	g, profile, err := h.load(ctx, gameID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := g.Acknowledge(); err != nil {
		writeDomainError(w, err)
		return
	}
	if g.Phase == tycoon.PhaseAwaitingOffer {
		if _, _, err := g.Deal(tycoon.NewEntityFactory(profile, h.src)); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	if err := h.Store.Save(ctx, g); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save game", err)
		return
	}

	if g.Phase == tycoon.PhaseGameOver {
		metrics.GamesCompleted.Inc()
		h.logger(r).Info("game over",
			zap.String("game_id", string(g.ID)),
			zap.String("final_score", g.Score().StringFixed(2)),
		)
	}

	writeJSON(w, http.StatusOK, toGameDTO(g, profile))
}

// ResetGame starts the game over at round 1 under the same ID.
// POST /api/games/{id}/reset
func (h *Handler) ResetGame(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := r.Context()
	g, profile, err := h.load(ctx, gameID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	g.Reset()
	if _, _, err := g.Deal(tycoon.NewEntityFactory(profile, h.src)); err != nil {
		writeDomainError(w, err)
		return
	}
	if err := h.Store.Save(ctx, g); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save game", err)
		return
	}

	metrics.GamesStarted.Inc()
	h.logger(r).Info("game reset",
		zap.String("game_id", string(g.ID)),
		zap.Int("generation", g.Generation),
	)

	writeJSON(w, http.StatusOK, toGameDTO(g, profile))
}

// GetSummary returns the per-round rows and the totals row.
// GET /api/games/{id}/summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	g, _, err := h.load(r.Context(), gameID(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryDTO(g))
}

// =============================================================================
// PROFILE HANDLERS
// =============================================================================

// ListProfiles returns the registered generation profiles.
// GET /api/profiles
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	names := h.Profiles.Names()
	dtos := make([]ProfileDTO, 0, len(names))
	for _, name := range names {
		p, err := h.Profiles.Lookup(name)
		if err != nil {
			continue
		}
		dtos = append(dtos, ProfileDTO{
			Name:    name,
			Default: name == h.DefaultProfile,
			Config:  h.Profiles.ToJSON(p),
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Health reports liveness.
// GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) load(ctx context.Context, id tycoon.GameID) (*tycoon.Game, tycoon.Profile, error) {
	g, err := h.Store.Get(ctx, id)
	if err != nil {
		return nil, tycoon.Profile{}, err
	}
	profile, err := h.Profiles.Lookup(g.Profile)
	if err != nil {
		return nil, tycoon.Profile{}, fmt.Errorf("game %s: %w", id, err)
	}
	return g, profile, nil
}

func (h *Handler) logger(r *http.Request) *zap.Logger {
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		return h.Log.With(zap.String("request_id", reqID))
	}
	return h.Log
}

func gameID(r *http.Request) tycoon.GameID {
	return tycoon.GameID(chi.URLParam(r, "id"))
}

// parseOffer rejects missing and negative rates. Range checks against the
// profile's sliders happen after the game is loaded.
func parseOffer(req OfferRequest) (decimal.Decimal, decimal.Decimal, error) {
	if req.BillRate == nil {
		return decimal.Zero, decimal.Zero, &tycoon.OfferError{Field: "bill_rate", Reason: "is required"}
	}
	if req.PayRate == nil {
		return decimal.Zero, decimal.Zero, &tycoon.OfferError{Field: "pay_rate", Reason: "is required"}
	}
	billRate := decimal.NewFromFloat(*req.BillRate)
	payRate := decimal.NewFromFloat(*req.PayRate)
	if billRate.IsNegative() {
		return decimal.Zero, decimal.Zero, &tycoon.OfferError{Field: "bill_rate", Value: billRate, Reason: "must not be negative"}
	}
	if payRate.IsNegative() {
		return decimal.Zero, decimal.Zero, &tycoon.OfferError{Field: "pay_rate", Value: payRate, Reason: "must not be negative"}
	}
	return billRate, payRate, nil
}

func decodeOptionalBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case tycoon.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Game not found", err)
	case tycoon.IsConflict(err):
		writeError(w, http.StatusConflict, "Action not allowed in current phase", err)
	case tycoon.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid request", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
