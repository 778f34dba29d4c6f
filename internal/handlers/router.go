// Package handlers is the HTTP transport. It binds and validates input,
// resolves the anonymous client identity, calls the service layer, and
// maps outcomes to response shapes. No business rules live here.
package handlers

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abhisek/mathquest/internal/service"
)

// Handler carries the service dependency for all routes.
type Handler struct {
	svc *service.Service
}

// New creates a Handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(svc *service.Service, corsOrigins []string) *gin.Engine {
	h := New(svc)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(corsMiddleware(corsOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/problems", h.createProblem)
		api.POST("/problems/:id/submissions", h.submitAnswer)
		api.POST("/problems/:id/hints", h.requestHint)
		api.POST("/problems/:id/solution", h.revealSolution)
		api.GET("/score", h.getScore)
		api.GET("/history", h.getHistory)
		api.DELETE("/history", h.clearHistory)
	}

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	cfg.AllowCredentials = true

	if len(origins) == 1 && origins[0] == "*" {
		// Credentials and a wildcard origin cannot be combined; echo the
		// caller's origin instead.
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// noStore marks a response as uncacheable. Applied to every mutating
// response and to score reads.
func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
}
