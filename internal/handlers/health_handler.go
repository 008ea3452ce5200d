package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/logger"
)

const healthTimeout = 2 * time.Second

// Pinger is the part of a ledger store the health check needs.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the storage backend is reachable.
type HealthHandler struct {
	store Pinger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

// HealthResponse is the health check body.
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

// Health checks the storage backend
// @Summary     Health check
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse
// @Failure     503 {object} HealthResponse
// @Router      /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		logger.Get().Warnw("storage health check failed", "backend", h.store.Name(), "error", err)
		c.JSON(apperrors.ErrUnavailable.StatusCode, HealthResponse{Status: "unavailable", Storage: h.store.Name()})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Storage: h.store.Name()})
}
