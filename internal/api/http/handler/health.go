package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/dtroode/studypartner-auth/internal/api/http/response"
	"github.com/dtroode/studypartner-auth/internal/logger"
)

const readinessTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status string `json:"status"`
}

// Health serves liveness and readiness probes.
type Health struct {
	pinger Pinger
	logger *logger.Logger
}

func NewHealth(pinger Pinger, logger *logger.Logger) *Health {
	return &Health{pinger: pinger, logger: logger}
}

// Live handles GET /health.
func (h *Health) Live(w http.ResponseWriter, r *http.Request) {
	response.OK(w, http.StatusOK, "", healthResponse{Status: "ok"})
}

// Ready handles GET /health/ready.
func (h *Health) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := h.pinger.Ping(ctx); err != nil {
		h.logger.Warn("Health handler: database not ready", "error", err.Error())
		response.JSON(w, http.StatusServiceUnavailable, response.Envelope{
			Success: false,
			Message: "database unavailable",
			Code:    "unavailable",
			Data:    healthResponse{Status: "unavailable"},
		})
		return
	}

	response.OK(w, http.StatusOK, "", healthResponse{Status: "ready"})
}
