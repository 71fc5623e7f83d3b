package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invana/internal/port"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	store port.ConfigStore
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store port.ConfigStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if _, err := h.store.LoadGlobal(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "config store not reachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
