// Package handlers provides HTTP handlers for position and transaction management.
package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/itamarw/nestegg/internal/domain"
	"github.com/itamarw/nestegg/internal/modules/ledger"
)

// Handler handles position lifecycle HTTP requests
type Handler struct {
	service *ledger.Service
	log     zerolog.Logger
}

// NewHandler creates a new ledger handler
func NewHandler(service *ledger.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "ledger").Logger(),
	}
}

type addPositionRequest struct {
	UserID   string  `json:"user_id"`
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// HandleAddPosition records a new holding.
func (h *Handler) HandleAddPosition(w http.ResponseWriter, r *http.Request) {
	var req addPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		h.writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	position, err := h.service.AddPosition(req.UserID, req.Symbol, req.Name, req.Type, req.Quantity, req.Price)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, position)
}

// HandleRemovePosition deletes a holding without recording a transaction.
func (h *Handler) HandleRemovePosition(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	positionID := chi.URLParam(r, "id")

	if err := h.service.RemovePosition(userID, positionID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

type closePositionRequest struct {
	UserID    string  `json:"user_id"`
	AssetID   string  `json:"asset_id"`
	SalePrice float64 `json:"sale_price"`
}

// HandleClosePosition sells a holding at the given price and records the
// realized result in the transaction log.
func (h *Handler) HandleClosePosition(w http.ResponseWriter, r *http.Request) {
	var req closePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.AssetID == "" {
		h.writeError(w, http.StatusBadRequest, "user_id and asset_id are required")
		return
	}

	tx, err := h.service.ClosePosition(req.UserID, req.AssetID, req.SalePrice)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":             true,
		"message":             "Position closed successfully",
		"profit_loss":         round2(tx.RealizedPnL),
		"profit_loss_percent": round2(tx.RealizedPnLPercent),
		"transaction":         tx,
	})
}

// HandleGetTransactions lists closed transactions, newest first.
func (h *Handler) HandleGetTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		h.writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	transactions, err := h.service.Transactions(userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to load transactions")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var totalGains float64
	for _, tx := range transactions {
		totalGains += tx.RealizedPnL
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"transactions":         transactions,
		"total_realized_gains": round2(totalGains),
		"total_transactions":   len(transactions),
	})
}

// writeServiceError maps domain errors to HTTP statuses.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrPositionNotFound):
		h.writeError(w, http.StatusNotFound, "Asset not found")
	default:
		h.log.Error().Err(err).Msg("Ledger operation failed")
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
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

func round2(val float64) float64 {
	return math.Round(val*100) / 100
}
