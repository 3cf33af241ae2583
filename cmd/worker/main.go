package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/place-resolver/internal/config"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/infrastructure/geoip"
	"github.com/place-resolver/internal/infrastructure/textindex"
	"github.com/place-resolver/internal/pkg/logger"
	"github.com/place-resolver/internal/repository/cache"
	"github.com/place-resolver/internal/repository/postgres"
	redisRepo "github.com/place-resolver/internal/repository/redis"
	"github.com/place-resolver/internal/usecase"
	"github.com/place-resolver/internal/worker"
	"github.com/place-resolver/internal/worker/resolve"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Place Resolve Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int64("batch_size", cfg.Worker.BatchSize),
		zap.Duration("read_timeout", cfg.Worker.StreamReadTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	if err := db.CheckSchema(ctx); err != nil {
		log.Fatal("Schema check failed", zap.Error(err))
	}

	// 4. Connect to Redis (стримы нужны всегда, кэш - по конфигу)
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	var cacheRepo repository.CacheRepository
	if cfg.Cache.Enabled {
		cacheRepo = cache.NewCacheRepository(redisClient)
	}

	// 5. Repositories
	store := postgres.NewDocumentRepository(db)
	refs := postgres.NewReferenceRepository(db)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), redisRepo.StreamOptions{
		ReadBlock: cfg.Worker.StreamReadTimeout,
		MaxLen:    cfg.Worker.StreamMaxLen,
	}, log)

	index, err := textindex.Open(cfg.TextIndex.Path, cfg.TextIndex.MaxCandidates, log)
	if err != nil {
		log.Fatal("Failed to open text index", zap.Error(err))
	}
	defer index.Close()

	if count, err := index.DocCount(); err != nil {
		log.Fatal("Failed to read text index", zap.Error(err))
	} else if count == 0 {
		if _, err := index.BuildFromStore(ctx, store, cfg.TextIndex.BatchSize); err != nil {
			log.Fatal("Failed to build text index", zap.Error(err))
		}
	}

	locator, err := geoip.Open(cfg.GeoIP.Path, log)
	if err != nil {
		log.Fatal("Failed to open GeoIP database", zap.Error(err))
	}
	defer locator.Close()

	// 6. Use cases
	hydrator := usecase.NewResultHydrator(store, log)
	resolver := usecase.NewAddressResolver(store, refs, index, hydrator, locator, cfg.Resolver, log)
	searchUC := usecase.NewSearchUseCase(index, resolver, hydrator, cacheRepo, log, cfg.Cache.SearchCacheTTL)

	// 7. Workers
	workerManager := worker.NewWorkerManager(log, cfg.Worker.ShutdownTimeout)
	workerManager.Register(resolve.NewWorker(
		streamRepo,
		searchUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.BatchSize,
		log,
	))

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
