package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"invana/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates pipeline errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var configErr *domain.ConfigError
	var ioErr *domain.IOError
	var invErr *domain.ModelInvocationError
	var parseErr *domain.ParseError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.As(err, &configErr):
		return http.StatusUnprocessableEntity, "INVALID_CONFIG", configErr.Error()
	case errors.As(err, &ioErr):
		return http.StatusNotFound, "DOCUMENT_UNREADABLE", ioErr.Error()
	case errors.As(err, &invErr):
		if invErr.StatusCode == http.StatusTooManyRequests {
			return http.StatusTooManyRequests, "MODEL_RATE_LIMITED", "model provider rate limited; retry later"
		}
		return http.StatusBadGateway, "MODEL_INVOCATION_FAILED", "model invocation failed"
	case errors.As(err, &parseErr):
		return http.StatusBadGateway, "MODEL_RESPONSE_UNPARSEABLE", parseErr.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a pipeline error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] %s: %v", requestID, code, err)
	}
	RespondError(c, status, code, msg)
}
