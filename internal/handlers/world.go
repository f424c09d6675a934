package handlers

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"isorail.dev/internal/services"
)

// WorldHandler handles the world snapshot endpoints
type WorldHandler struct {
	worlds *services.WorldService
	logger logrus.FieldLogger
}

// NewWorldHandler creates a new WorldHandler
func NewWorldHandler(ws *services.WorldService, logger logrus.FieldLogger) *WorldHandler {
	return &WorldHandler{worlds: ws, logger: logger}
}

// GetWorld handles GET /api/world - returns the full published snapshot
func (h *WorldHandler) GetWorld(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, services.WorldResponse(h.worlds.Current()))
}

// GetRoute handles GET /api/world/route - returns just the track
func (h *WorldHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, services.RouteResponse(h.worlds.Current().Route))
}

// Regenerate handles POST /api/world/regenerate?seed=N. Without a seed the
// seed after the current world's is used.
func (h *WorldHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	seed := h.worlds.NextSeed()
	if s := r.URL.Query().Get("seed"); s != "" {
		var err error
		seed, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid seed")
			return
		}
	}

	world, err := h.worlds.Regenerate(seed)
	if err != nil {
		h.logger.WithError(err).WithField("seed", seed).Error("regenerating world")
		respondError(w, http.StatusInternalServerError, "Could not generate world")
		return
	}
	respondJSON(w, http.StatusOK, services.WorldResponse(world))
}
