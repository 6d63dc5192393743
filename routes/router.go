package routes

import (
	"carrental/internal/handlers"
	"carrental/internal/middleware"
	"carrental/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router serves.
type Handlers struct {
	Admin      *handlers.AdminHandler
	Session    *handlers.SessionHandler
	Customer   *handlers.CustomerHandler
	Statistics *handlers.StatisticsHandler
	Health     *handlers.HealthHandler
}

type RouterConfig struct {
	JWTSecret      string
	AdminAPIKey    string
	AllowedOrigins []string
	TrustedProxies []string
	WebSocketPath  string
}

// NewRouter wires the global middleware and every route group
func NewRouter(h Handlers, config RouterConfig, log *logger.Logger) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(config.TrustedProxies); err != nil {
		return nil, err
	}

	router.Use(
		middleware.RecoveryMiddleware(log),
		middleware.RequestIDMiddleware(),
		middleware.CORSMiddleware(config.AllowedOrigins),
		middleware.LoggingMiddleware(log),
	)

	router.GET("/health", h.Health.Health)
	router.GET(config.WebSocketPath, h.Statistics.Stream)

	v1 := router.Group("/api/v1")
	SetupAdminRoutes(v1, h.Admin, h.Statistics, config.AdminAPIKey)
	SetupSessionRoutes(v1, h.Session)
	SetupCustomerRoutes(v1, h.Customer, config.JWTSecret)

	return router, nil
}
