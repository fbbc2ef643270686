package main

// @title Nearest Records API
// @version 1.0.0
// @description Returns the k records of a static geotagged dataset nearest to a point, ranked by great-circle distance.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/nearest-service/docs"
	"github.com/nearest-service/internal/config"
	"github.com/nearest-service/internal/dataset"
	httpDelivery "github.com/nearest-service/internal/delivery/http"
	"github.com/nearest-service/internal/delivery/http/handler"
	"github.com/nearest-service/internal/domain"
	"github.com/nearest-service/internal/domain/repository"
	"github.com/nearest-service/internal/engine"
	"github.com/nearest-service/internal/pkg/logger"
	"github.com/nearest-service/internal/repository/cache"
	"github.com/nearest-service/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Nearest Records API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("dataset_source", cfg.Dataset.Source),
		zap.String("dataset_path", cfg.Dataset.Path),
	)

	// 3. Load dataset once. A failure is kept and replayed on every request
	load := loadDataset(cfg, log)

	// 4. Result cache
	cacheRepo, closeCache := newCacheRepository(cfg, log)
	defer closeCache()

	// 5. Use cases and handlers
	eng := engine.New(engine.Options{
		Workers:           cfg.Engine.Workers,
		ParallelThreshold: cfg.Engine.ParallelThreshold,
	})

	nearestUC := usecase.NewNearestUseCase(
		load,
		eng,
		cacheRepo,
		log,
		cfg.Cache.NearestCacheTTL,
		cfg.Engine.DefaultK,
	)

	nearestHandler := handler.NewNearestHandler(nearestUC, log)
	indexHandler := handler.NewIndexHandler(cfg.Server.StaticIndex, log)

	// 6. HTTP server
	server := httpDelivery.NewServer(cfg, log, nearestHandler, indexHandler)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}

func loadDataset(cfg *config.Config, log *zap.Logger) domain.LoadResult {
	src, release, err := dataset.OpenSource(cfg, log)
	defer release()
	if err != nil {
		log.Error("Failed to open dataset source", zap.Error(err))
		return domain.LoadFailed(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	return dataset.NewLoader(src, dataset.ColumnsFromConfig(&cfg.Dataset), log).LoadResult(ctx)
}

func newCacheRepository(cfg *config.Config, log *zap.Logger) (repository.CacheRepository, func()) {
	if !cfg.Redis.Enabled {
		log.Info("Result cache disabled")
		return cache.NewNoopRepository(), func() {}
	}

	redisClient, err := cache.NewRedis(cfg, log)
	if err != nil {
		log.Warn("Redis unavailable, result cache disabled", zap.Error(err))
		return cache.NewNoopRepository(), func() {}
	}

	return cache.NewCacheRepository(redisClient), func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}
}
