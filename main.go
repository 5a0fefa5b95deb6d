// main.go
package main

import (
	"log"
	"time"

	"marketplace-booking/cmd"
	"marketplace-booking/internal/data/repository"
	"marketplace-booking/internal/notify"
	"marketplace-booking/internal/wire"
	"marketplace-booking/pkg/cache"
	"marketplace-booking/pkg/database"
	"marketplace-booking/pkg/utils"

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

	// Connect to Redis. The availability cache degrades to database reads without it,
	// so a missing Redis is a warning, not a startup failure.
	redisCache, err := cache.InitRedis(config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, availability cache disabled", zap.Error(err))
		redisCache = nil
	} else {
		defer redisCache.Close()
		logger.Info("Redis connected successfully")
	}

	// Pick the transition notifier: webhook when configured, log-only otherwise
	var notifier notify.Notifier
	if config.Notify.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(
			config.Notify.WebhookURL,
			time.Duration(config.Notify.TimeoutSeconds)*time.Second,
			logger,
		)
	} else {
		notifier = notify.NewLogNotifier(logger)
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, redisCache, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, notifier, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
