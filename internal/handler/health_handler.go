package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"joblocator/internal/service"
)

// ServiceName is reported by the health endpoints.
const ServiceName = "joblocator"

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	extractionService service.ExtractionService
	provider          string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(extractionService service.ExtractionService, provider string) *HealthHandler {
	return &HealthHandler{extractionService: extractionService, provider: provider}
}

// Health handles GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": ServiceName})
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.extractionService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "extraction backend not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"provider": h.provider,
		"model":    h.extractionService.Model(),
	})
}
