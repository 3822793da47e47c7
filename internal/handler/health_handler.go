package handler

import (
	"net/http"
	"os/exec"

	"github.com/gin-gonic/gin"

	"billscan/internal/config"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	cfg *config.Config
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. The service is ready when the PDF renderer
// is installed and a model API key is configured.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if _, err := exec.LookPath(h.cfg.Splitter.Pdftoppm); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "pdftoppm not installed"})
		return
	}
	if h.cfg.Parser.APIKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "model API key not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
