package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"isorail.dev/internal/middleware"
	"isorail.dev/internal/services"
)

// SetupRoutes configures all routes and returns the router
func SetupRoutes(worlds *services.WorldService, hub *Hub, logger logrus.FieldLogger) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	worldHandler := NewWorldHandler(worlds, logger)
	feedHandler := NewFeedHandler(hub, worlds, logger)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/world", worldHandler.GetWorld)
		r.Get("/world/route", worldHandler.GetRoute)
		r.Post("/world/regenerate", worldHandler.Regenerate)

		r.Get("/ws", feedHandler.Serve)

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Error("encoding JSON response")
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
