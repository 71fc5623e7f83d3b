package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invana/internal/service"
)

// AnalysisHandler handles document analysis endpoints.
type AnalysisHandler struct {
	svc service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(svc service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{svc: svc}
}

// AnalyzeRequest is the JSON body of POST /analyze.
type AnalyzeRequest struct {
	DocumentKey string            `json:"documentKey" binding:"required"`
	ClientID    string            `json:"clientId"`
	Parameters  map[string]string `json:"parameters"`
}

// Analyze handles POST /api/v1/analyze.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "documentKey is required")
		return
	}

	record, err := h.svc.Analyze(c.Request.Context(), &service.AnalyzeInput{
		DocumentKey: req.DocumentKey,
		ClientID:    req.ClientID,
		Parameters:  req.Parameters,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, record)
}

// PromptPreviewRequest is the JSON body of POST /prompt/preview.
type PromptPreviewRequest struct {
	ClientID   string            `json:"clientId"`
	Parameters map[string]string `json:"parameters"`
}

// PromptPreview handles POST /api/v1/prompt/preview. It renders the
// effective prompt for a client without calling the model.
func (h *AnalysisHandler) PromptPreview(c *gin.Context) {
	var req PromptPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body must be a JSON object")
		return
	}

	rendered, err := h.svc.BuildPrompt(c.Request.Context(), req.ClientID, req.Parameters)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"prompt": rendered})
}

// ResetClients handles POST /api/v1/cache/reset. It clears the cached
// model clients after credential rotation.
func (h *AnalysisHandler) ResetClients(c *gin.Context) {
	h.svc.ResetClients()
	RespondOK(c, gin.H{"reset": true})
}
