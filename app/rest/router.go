package rest

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"account-service/app/port"
	"account-service/app/rest/handlers"
	custommw "account-service/app/rest/middleware"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger             *slog.Logger
	AccountUsecase     port.AccountUsecase
	DependencyChecks   map[string]handlers.DependencyCheck
	AllowedOrigins     []string
	RateLimitPerSecond float64
	RateLimitBurst     int
	EnableDebug        bool
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Debug = config.EnableDebug

	authHandler := handlers.NewAuthHandler(config.AccountUsecase, config.Logger)
	profileHandler := handlers.NewProfileHandler(config.AccountUsecase, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.Logger, config.DependencyChecks)

	rateLimiter := custommw.NewRateLimiter(config.RateLimitPerSecond, config.RateLimitBurst)

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.CORS(config.AllowedOrigins...))
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}, latency=${latency_human}, error=${error}\n",
	}))

	v1 := e.Group("/v1")

	// Health endpoints
	v1.GET("/health", healthHandler.HealthCheck)
	v1.GET("/ready", healthHandler.ReadinessCheck)
	v1.GET("/live", healthHandler.LivenessCheck)

	// Authentication endpoints
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session", authHandler.GetSession)
	auth.POST("/recovery", authHandler.RequestPasswordReset)

	// Profile endpoints
	v1.GET("/profiles", profileHandler.ListProfiles)
	v1.GET("/profiles/:profileId", profileHandler.GetProfile)
	v1.PUT("/profile", profileHandler.UpdateProfile)
	v1.DELETE("/account", profileHandler.DeleteAccount)

	return e
}

// Shutdown gracefully stops the router's server.
func Shutdown(ctx context.Context, e *echo.Echo) error {
	return e.Shutdown(ctx)
}
