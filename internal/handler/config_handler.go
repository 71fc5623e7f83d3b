package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"invana/internal/domain"
	"invana/internal/port"
)

// ConfigHandler handles the global config and client override documents.
type ConfigHandler struct {
	store port.ConfigStore
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(store port.ConfigStore) *ConfigHandler {
	return &ConfigHandler{store: store}
}

// GetGlobal handles GET /api/v1/config.
func (h *ConfigHandler) GetGlobal(c *gin.Context) {
	cfg, err := h.store.LoadGlobal(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, cfg)
}

// PutGlobal handles PUT /api/v1/config. The document is validated and
// written wholesale.
func (h *ConfigHandler) PutGlobal(c *gin.Context) {
	var cfg domain.ExtractionConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "body must be an extraction config document")
		return
	}
	if err := h.store.SaveGlobal(c.Request.Context(), &cfg); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, cfg)
}

// GetOverrides handles GET /api/v1/clients/:id/overrides. A client
// without an override document gets an empty one.
func (h *ConfigHandler) GetOverrides(c *gin.Context) {
	clientID := c.Param("id")
	overrides, err := h.store.LoadClientOverrides(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			RespondOK(c, &domain.ClientOverrides{})
			return
		}
		HandleError(c, err)
		return
	}
	RespondOK(c, overrides)
}

// PutOverrides handles PUT /api/v1/clients/:id/overrides.
func (h *ConfigHandler) PutOverrides(c *gin.Context) {
	clientID := c.Param("id")
	var overrides domain.ClientOverrides
	if err := c.ShouldBindJSON(&overrides); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "body must be a client overrides document")
		return
	}
	if err := h.store.SaveClientOverrides(c.Request.Context(), clientID, &overrides); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, overrides)
}
