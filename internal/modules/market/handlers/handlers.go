// Package handlers provides the HTTP proxy for current market prices.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/itamarw/nestegg/internal/clients/marketdata"
)

// Handler handles market data HTTP requests
type Handler struct {
	feed marketdata.PriceFeed
	log  zerolog.Logger
}

// NewHandler creates a new market handler
func NewHandler(feed marketdata.PriceFeed, log zerolog.Logger) *Handler {
	return &Handler{
		feed: feed,
		log:  log.With().Str("handler", "market").Logger(),
	}
}

type pricesRequest struct {
	Symbols []string `json:"symbols"`
}

// HandleGetPrices returns current prices for the requested symbols.
// Unknown symbols come back as null so the client can fall back per symbol.
func (h *Handler) HandleGetPrices(w http.ResponseWriter, r *http.Request) {
	var req pricesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Symbols) == 0 {
		h.writeError(w, http.StatusBadRequest, "symbols is required")
		return
	}

	prices, err := h.feed.GetPrices(req.Symbols)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch prices")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"prices": prices})
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
