// main.go
package main

import (
	"context"
	"log"
	"time"

	"decor-marketplace/cmd"
	"decor-marketplace/internal/data/repository"
	"decor-marketplace/internal/jobs"
	"decor-marketplace/internal/wire"
	"decor-marketplace/pkg/cache"
	"decor-marketplace/pkg/database"
	"decor-marketplace/pkg/payment"
	"decor-marketplace/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Payment provider
	provider := payment.NewStripeProvider(
		config.Stripe.SecretKey,
		config.App.FrontendURL,
		config.Stripe.Timeout,
		logger,
	)

	// Dashboard cache, optional
	store := cache.NewCache(config.Redis.Addr, config.Redis.Password, config.Redis.DB, config.Redis.TTL, logger)
	defer store.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := store.Ping(pingCtx); err != nil {
		logger.Warn("Redis unreachable, dashboard served uncached", zap.Error(err))
	}
	cancel()

	// Wire all dependencies
	app := wire.Wiring(repos, provider, store, config, logger)

	// Background settlement repair
	reconciler := jobs.NewReconciler(repos, logger)
	if err := reconciler.Start(); err != nil {
		logger.Fatal("Failed to start reconciler", zap.Error(err))
	}
	defer reconciler.Stop()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port, logger)
}
