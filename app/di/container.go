package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"account-service/app/config"
	"account-service/app/driver/deleter"
	"account-service/app/driver/kratos"
	"account-service/app/driver/postgres"
	"account-service/app/gateway"
	"account-service/app/port"
	"account-service/app/rest"
	"account-service/app/rest/handlers"
	"account-service/app/usecase"
	"account-service/app/utils/logger"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB            *postgres.DB
	KratosClient  *kratos.Client
	DeleterClient *deleter.Client

	// Gateways
	AuthGateway    port.AuthGateway
	ProfileGateway port.ProfileGateway

	// Usecases
	SessionContainer *usecase.SessionContainer
	DeletionUsecase  port.DeletionUsecase
	AccountUsecase   port.AccountUsecase
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, log *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: log,
	}

	var err error

	container.DB, err = postgres.NewConnection(cfg, logger.WithComponent(log, "database"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	container.KratosClient, err = kratos.NewClient(cfg, logger.WithComponent(log, "kratos"))
	if err != nil {
		container.DB.Close()
		return nil, fmt.Errorf("failed to initialize Kratos client: %w", err)
	}

	container.DeleterClient, err = deleter.NewClient(cfg, log)
	if err != nil {
		container.DB.Close()
		return nil, fmt.Errorf("failed to initialize deleter client: %w", err)
	}

	// Drivers behind ports
	provider := kratos.NewProviderAdapter(container.KratosClient, log)
	profileRepo := postgres.NewProfileRepository(container.DB.Pool(), log)

	// Gateways
	container.AuthGateway = gateway.NewAuthGateway(provider, cfg.DefaultEmailDomain, log)
	container.ProfileGateway = gateway.NewProfileGateway(profileRepo, log)

	// Usecases
	container.SessionContainer = usecase.NewSessionContainer()
	container.DeletionUsecase = usecase.NewDeletionUseCase(
		container.DeleterClient, container.ProfileGateway, provider, log)
	container.AccountUsecase = usecase.NewAccountUseCase(
		container.AuthGateway, container.ProfileGateway,
		container.DeletionUsecase, container.SessionContainer, log)

	log.Info("container initialized with full dependency stack")

	return container, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	routerConfig := rest.RouterConfig{
		Logger:         c.Logger,
		AccountUsecase: c.AccountUsecase,
		DependencyChecks: map[string]handlers.DependencyCheck{
			"database": func(ctx context.Context) error {
				return c.DB.Pool().Ping(ctx)
			},
			"kratos": c.KratosClient.HealthCheck,
		},
		AllowedOrigins:     c.Config.AllowedOrigins,
		RateLimitPerSecond: c.Config.RateLimitPerSecond,
		RateLimitBurst:     c.Config.RateLimitBurst,
		EnableDebug:        c.Config.LogLevel == "debug",
	}

	return rest.NewRouter(routerConfig)
}

// Close closes all resources
func (c *Container) Close() error {
	if c.DB != nil {
		c.DB.Close()
	}

	c.Logger.Info("container closed")
	return nil
}
