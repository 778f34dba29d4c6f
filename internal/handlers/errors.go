package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/mathquest/internal/llm"
	"github.com/abhisek/mathquest/internal/problem"
	"github.com/abhisek/mathquest/internal/service"
)

// respondError maps a service error to a response. Gating rejections
// carry stable discriminators the UI switches on; everything upstream
// collapses to a retryable 502 with no provider detail.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session_not_found"})
	case errors.Is(err, service.ErrAlreadySolved):
		c.JSON(http.StatusConflict, gin.H{"error": "already_solved"})
	case errors.Is(err, service.ErrSolutionRevealed):
		c.JSON(http.StatusConflict, gin.H{"error": "solution_revealed"})
	case errors.Is(err, service.ErrMaxHints):
		c.JSON(http.StatusConflict, gin.H{"error": "max_hints"})
	case isGenerationError(err):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "generation_failed",
			"message": "Problem generation failed. Please try again.",
		})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}

func isGenerationError(err error) bool {
	var (
		rateLimit   *llm.ErrRateLimit
		timeout     *llm.ErrTimeout
		invalid     *llm.ErrInvalidContent
		unavailable *llm.ErrProviderUnavailable
		validation  *problem.ValidationError
	)
	return errors.As(err, &rateLimit) ||
		errors.As(err, &timeout) ||
		errors.As(err, &invalid) ||
		errors.As(err, &unavailable) ||
		errors.As(err, &validation)
}

func respondBadRequest(c *gin.Context, field, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid_request",
		"field":   field,
		"message": message,
	})
}
