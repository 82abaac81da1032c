package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all recommendation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/recommendations", func(r chi.Router) {
		r.Get("/", h.HandleGetAllocation)    // Model allocation for a risk profile
		r.Get("/stocks", h.HandleGetStocks)  // Curated picks for a risk profile
	})
}
