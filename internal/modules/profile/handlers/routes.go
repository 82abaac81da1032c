package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all onboarding routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/onboarding", func(r chi.Router) {
		r.Get("/status", h.HandleGetStatus)        // Combined profile and preferences view
		r.Post("/progress", h.HandleSaveProgress)  // Save one onboarding step
		r.Post("/complete", h.HandleComplete)      // Mark onboarding finished
		r.Get("/completed", h.HandleHasCompleted)  // Cached completion flag
	})
}
