package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all portfolio routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/portfolio", func(r chi.Router) {
		r.Get("/", h.HandleGetPortfolio)       // List positions with live values
		r.Get("/stats", h.HandleGetStats)      // Aggregated statistics
		r.Get("/history", h.HandleGetHistory)  // Six month value series
	})
}
