package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all position and transaction routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/assets", func(r chi.Router) {
		r.Post("/", h.HandleAddPosition)         // Record a new holding
		r.Delete("/{id}", h.HandleRemovePosition) // Remove without a trace
	})

	r.Route("/transactions", func(r chi.Router) {
		r.Get("/", h.HandleGetTransactions)   // Closed positions, newest first
		r.Post("/close", h.HandleClosePosition) // Sell a holding
	})
}
