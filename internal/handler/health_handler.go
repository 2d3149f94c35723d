package handler

import (
	"context"
	"net/http"
	"time"

	"go-gin-event-rsvp/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	checks  []HealthCheck
	timeout time.Duration
}

func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

func (h *HealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/v1/health", h.Health)
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	healthy := true
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			logger.WithComponent("handler").Warn("Health check failed",
				zap.String("dependency", check.Name),
				zap.Error(err),
			)
			results[check.Name] = "down"
			healthy = false
			continue
		}
		results[check.Name] = "up"
	}

	if !healthy {
		respond(c, http.StatusServiceUnavailable, "Unhealthy", results)
		return
	}
	respond(c, http.StatusOK, "OK", results)
}
