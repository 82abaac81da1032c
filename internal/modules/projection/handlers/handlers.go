// Package handlers provides HTTP handlers for growth projections.
package handlers

import (
	"encoding/json"
	"math"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/itamarw/nestegg/internal/modules/projection"
)

// Bounds enforced at the API edge. The simulator itself accepts any
// finite plan.
const (
	maxYears         = 50
	maxAnnualPercent = 50
)

// Handler handles projection HTTP requests
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a new projection handler
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{
		log: log.With().Str("handler", "projection").Logger(),
	}
}

// HandleSimulate runs the growth simulator for a submitted plan.
func (h *Handler) HandleSimulate(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.decodePlan(w, r)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, projection.Simulate(plan))
}

// HandleChart renders the simulation as a PNG line chart.
func (h *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	plan, ok := h.decodePlan(w, r)
	if !ok {
		return
	}

	png, err := projection.RenderChart(plan, projection.Simulate(plan))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to render projection chart")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.log.Error().Err(err).Msg("Failed to write chart response")
	}
}

// decodePlan parses and bounds-checks the plan. Validation lives here at
// the API edge so the simulator stays pure.
func (h *Handler) decodePlan(w http.ResponseWriter, r *http.Request) (projection.Plan, bool) {
	var plan projection.Plan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return plan, false
	}

	switch {
	case plan.Years < 0 || plan.Years > maxYears:
		h.writeError(w, http.StatusBadRequest, "years must be between 0 and 50")
	case plan.InitialAmount < 0 || !isFinite(plan.InitialAmount):
		h.writeError(w, http.StatusBadRequest, "initial_amount must be a non-negative number")
	case plan.MonthlyAmount < 0 || !isFinite(plan.MonthlyAmount):
		h.writeError(w, http.StatusBadRequest, "monthly_amount must be a non-negative number")
	case plan.AnnualReturnPercent < 0 || plan.AnnualReturnPercent > maxAnnualPercent || !isFinite(plan.AnnualReturnPercent):
		h.writeError(w, http.StatusBadRequest, "annual_return_percent must be between 0 and 50")
	default:
		return plan, true
	}
	return plan, false
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
