package main

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/sat-practice-service/internal/cache"
	"github.com/SAP-F-2025/sat-practice-service/internal/config"
	"github.com/SAP-F-2025/sat-practice-service/internal/events"
	"github.com/SAP-F-2025/sat-practice-service/internal/repositories"
	"github.com/SAP-F-2025/sat-practice-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/sat-practice-service/internal/services"
	"github.com/SAP-F-2025/sat-practice-service/internal/utils"
	"github.com/SAP-F-2025/sat-practice-service/pkg"
	"github.com/redis/go-redis/v9"
)

// app holds the long-lived resources shared by the commands
type app struct {
	cfg       *config.Config
	logger    *utils.SlogLogger
	repo      repositories.Repository
	redis     *redis.Client
	publisher events.EventPublisher
	services  *services.ServiceManager
}

// newApp loads configuration and opens the database. Redis and the event
// publisher are optional: a failure there is logged and the app runs without
// them.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := utils.NewLogger(cfg.Environment)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return nil, err
	}
	repo := postgres.NewRepository(db)

	if cfg.AutoMigrate {
		if err := repo.Migrate(ctx); err != nil {
			repo.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		logger.Info("Database migrated")
	}

	a := &app{cfg: cfg, logger: logger, repo: repo}

	questionCache := cache.NewNoopCache()
	if cfg.RedisURL != "" {
		client, err := pkg.NewRedisClient(ctx, cfg)
		if err != nil {
			logger.Warn("Redis unavailable, caching disabled", "error", err)
		} else {
			a.redis = client
			questionCache = cache.NewRedisCache(client, logger.Slog())
			logger.Info("Redis cache enabled")
		}
	}

	publisher, err := cfg.Events.CreateEventPublisher(logger.Slog())
	if err != nil {
		logger.Warn("Event publisher unavailable, falling back to mock", "error", err)
		publisher = events.NewMockEventPublisher(logger.Slog())
	}
	a.publisher = publisher

	a.services = services.NewServiceManager(services.ServiceDeps{
		Repo:      repo,
		Cache:     questionCache,
		CacheTTL:  cfg.CacheTTL,
		Publisher: publisher,
		Logger:    logger.Slog(),
	})

	return a, nil
}

func (a *app) Close() {
	if err := a.publisher.Close(); err != nil {
		a.logger.LogError(err, "Failed to close event publisher")
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.LogError(err, "Failed to close redis client")
		}
	}
	if err := a.repo.Close(); err != nil {
		a.logger.LogError(err, "Failed to close database")
	}
}
