// Package handlers provides HTTP handlers for allocation recommendations.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/itamarw/nestegg/internal/modules/recommendations"
)

// Handler handles recommendation HTTP requests
type Handler struct {
	log zerolog.Logger
}

// NewHandler creates a new recommendations handler
func NewHandler(log zerolog.Logger) *Handler {
	return &Handler{
		log: log.With().Str("handler", "recommendations").Logger(),
	}
}

// HandleGetAllocation returns the model allocation for a risk profile.
func (h *Handler) HandleGetAllocation(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.profileParam(w, r)
	if !ok {
		return
	}

	allocation, err := recommendations.ForProfile(profile)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, allocation)
}

// HandleGetStocks returns the curated picks for a risk profile.
func (h *Handler) HandleGetStocks(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.profileParam(w, r)
	if !ok {
		return
	}

	ideas, err := recommendations.StocksForProfile(profile)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"stocks": ideas})
}

func (h *Handler) profileParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("profile")
	if raw == "" {
		h.writeError(w, http.StatusBadRequest, "profile is required")
		return 0, false
	}
	profile, err := strconv.Atoi(raw)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "profile must be an integer between 1 and 4")
		return 0, false
	}
	return profile, true
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
