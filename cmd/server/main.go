// file: cmd/server/main.go
package main

import (
	"context"
	"finlit/internal/appinfo"
	"finlit/internal/config"
	"finlit/internal/database"
	"finlit/internal/response"
	"finlit/internal/router"
	"finlit/internal/services"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting finlit API",
		zap.String("version", appinfo.Version()),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	dbManager, err := database.NewManager(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(cfg.Database.MigrationsPath); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	serviceCollection, err := services.NewServiceCollection(dbManager, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	responseConfig := response.DefaultConfig()
	responseConfig.PrettyJSON = cfg.IsDevelopment()
	responseConfig.MaskInternalErrors = !cfg.IsDevelopment()
	responseBuilder := response.NewBuilder(responseConfig, logger)

	handler := router.SetupRouter(serviceCollection, responseBuilder, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	maintenanceCtx, stopMaintenance := context.WithCancel(context.Background())
	go runMaintenance(maintenanceCtx, serviceCollection, logger)

	go func() {
		logger.Info("HTTP server listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Shutdown signal received", zap.String("signal", sig.String()))

	stopMaintenance()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := serviceCollection.Shutdown(shutdownCtx); err != nil {
		logger.Error("Service shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}

// runMaintenance periodically evicts expired sessions and other stale rows.
func runMaintenance(ctx context.Context, sc *services.ServiceCollection, logger *zap.Logger) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cleanupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			if err := sc.Repositories.CleanupExpiredData(cleanupCtx); err != nil {
				logger.Warn("Expired data cleanup failed", zap.Error(err))
			}
			cancel()
		}
	}
}

func initLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Logging.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
