// file: internal/services/service_collection.go
package services

import (
	"context"
	"fmt"

	"finlit/internal/appinfo"
	"finlit/internal/cache"
	"finlit/internal/config"
	"finlit/internal/database"
	"finlit/internal/events"
	"finlit/internal/repositories"

	"go.uber.org/zap"
)

// ServiceCollection holds all services with their shared infrastructure,
// wired once at startup and handed to the router.
type ServiceCollection struct {
	AuthService       AuthService
	ProgressService   ProgressService
	CatalogService    CatalogService
	CalculatorService CalculatorService
	EmailService      EmailService

	Repositories *repositories.Collection
	Cache        cache.Cache
	Events       *events.Bus
	Logger       *zap.Logger
	Config       *config.Config
}

// NewServiceCollection wires repositories, cache and services in
// dependency order.
func NewServiceCollection(dbManager *database.Manager, cfg *config.Config, logger *zap.Logger) (*ServiceCollection, error) {
	if dbManager == nil {
		return nil, fmt.Errorf("database manager is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	repos, err := repositories.NewCollection(dbManager, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	appCache, err := cache.New(&cache.Config{
		Provider: cfg.Cache.Provider,
		TTL:      cfg.Cache.TTL,
		MaxKeys:  10000,
		RedisURL: cfg.Cache.RedisURL,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	emails := NewEmailService(logger)

	bus := events.NewBus(0, logger)
	events.SubscribeActivityLog(bus, logger)

	sc := &ServiceCollection{
		AuthService:       NewAuthService(repos, emails, bus, &cfg.Auth, &cfg.Retry, logger),
		ProgressService:   NewProgressService(repos, bus, &cfg.Retry, logger),
		CatalogService:    NewCatalogService(repos, appCache, cfg.Cache.TTL, logger),
		CalculatorService: NewCalculatorService(),
		EmailService:      emails,
		Repositories:      repos,
		Cache:             appCache,
		Events:            bus,
		Logger:            logger,
		Config:            cfg,
	}

	logger.Info("service collection initialized")
	return sc, nil
}

// HealthCheck aggregates dependency health for the readiness endpoint.
func (sc *ServiceCollection) HealthCheck(ctx context.Context) map[string]any {
	health := map[string]any{
		"version":  appinfo.Version(),
		"database": sc.Repositories.HealthCheck(ctx),
	}
	if err := sc.Cache.Health(ctx); err != nil {
		health["cache"] = map[string]any{"healthy": false, "error": err.Error()}
	} else {
		health["cache"] = map[string]any{"healthy": true}
	}
	return health
}

// Shutdown releases cache and database resources.
func (sc *ServiceCollection) Shutdown(ctx context.Context) error {
	sc.Logger.Info("shutting down service collection")

	sc.Events.Close()
	if err := sc.Cache.Close(); err != nil {
		sc.Logger.Warn("cache close failed", zap.Error(err))
	}
	return sc.Repositories.Close()
}
