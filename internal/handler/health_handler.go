package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brfiscal/internal/validator"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	engine *validator.Engine
}

// NewHealthHandler creates a new HealthHandler. Readiness requires a rule
// engine with at least one registered rule.
func NewHealthHandler(engine *validator.Engine) *HealthHandler {
	return &HealthHandler{engine: engine}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.engine == nil || len(h.engine.Rules()) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "no document rules registered"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
