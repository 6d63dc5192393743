package handlers

import (
	"context"
	"net/http"
	"time"

	"carrental/internal/services"
	"carrental/internal/utils"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is a backend the health check can reach, e.g. MongoDB or Redis.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	rentalService services.RentalService
	version       string
	backends      map[string]Pinger
}

func NewHealthHandler(rentalService services.RentalService, version string, backends map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		rentalService: rentalService,
		version:       version,
		backends:      backends,
	}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := "healthy"
	checks := make(map[string]string, len(h.backends))
	for name, backend := range h.backends {
		if err := backend.Ping(ctx); err != nil {
			checks[name] = err.Error()
			status = "degraded"
			continue
		}
		checks[name] = "ok"
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":      status,
		"version":     h.version,
		"has_company": h.rentalService.HasCompany(),
		"checks":      checks,
		"timestamp":   utils.FormatTimeISO(time.Now()),
	})
}
