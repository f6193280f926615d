package errors

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"codeberg.org/essayinsights/server/internal/insights"
	"codeberg.org/essayinsights/server/internal/llm"
	"codeberg.org/essayinsights/server/internal/logger"
	"codeberg.org/essayinsights/server/internal/retriever"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.FromError() for anything returned by the search pipeline
//   - Use errors.ValidationError() and friends for request problems
//   - These functions handle both logging and HTTP response automatically
//   - Never call both logger.ErrorErr() and an error helper for the same error
//
// For services/repositories/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond
//   - Do not log errors in non-handler code (avoid double logging)

// returns a 400 bad request error for validation failures
func ValidationError(c *gin.Context, err error) {
	message := "validation failed"
	details := ""

	if err != nil {
		details = sanitizeError(err)
		// extract a more specific message from validation errors if available
		if strings.Contains(err.Error(), "binding") || strings.Contains(err.Error(), "validation") {
			message = "request validation failed"
		}
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: message,
		Details: details,
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	respond(c, http.StatusInternalServerError, CodeServerError, message, "an error occurred", err)
}

// returns a 500 error for a query the embedder rejected or could not encode
func EmbeddingFailed(c *gin.Context, err error) {
	respond(c, http.StatusInternalServerError, CodeEmbeddingFailed, "failed to encode query", "", err)
}

// returns a 503 error when a backing service is unreachable
func ServiceUnavailable(c *gin.Context, message string, err error) {
	respond(c, http.StatusServiceUnavailable, CodeServiceUnavailable, message, "service unavailable", err)
}

// returns a 502 error when an upstream provider failed
func BadGateway(c *gin.Context, message string, err error) {
	respond(c, http.StatusBadGateway, CodeBadGateway, message, "upstream service failed", err)
}

// returns a 504 error when the request deadline passed
func GatewayTimeout(c *gin.Context, message string, err error) {
	respond(c, http.StatusGatewayTimeout, CodeGatewayTimeout, message, "request timed out", err)
}

// maps the search pipeline's error taxonomy to a response
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		GatewayTimeout(c, "search did not finish in time", err)
	case errors.Is(err, retriever.ErrInvalidQuery):
		ValidationError(c, err)
	case errors.Is(err, llm.ErrEmbedding):
		EmbeddingFailed(c, err)
	case errors.Is(err, retriever.ErrStoreUnavailable):
		ServiceUnavailable(c, "essay search is unavailable", err)
	case errors.Is(err, insights.ErrSynthesis):
		BadGateway(c, "failed to generate insights", err)
	default:
		InternalError(c, "", err)
	}
}

// logs the full error server-side and writes the sanitized response
func respond(c *gin.Context, status int, code, message, fallback string, err error) {
	if message == "" {
		message = fallback
	}

	info := classifyError(err)

	logger.FromContext(c.Request.Context()).Error(message,
		"error", err,
		"category", info.category,
		"status", status,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)

	c.JSON(status, ErrorResponse{
		Error:   code,
		Message: message,
		Details: info.sanitized,
	})
}
