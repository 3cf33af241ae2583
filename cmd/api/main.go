package main

// @title Place Resolver API
// @version 1.0.0
// @description Обратный газеттир: свободный текст, структурированный адрес или координаты превращаются в места с иерархией, локализованными названиями и геометрией.
// @description
// @description Основные возможности:
// @description - Поиск мест по свободному тексту и автодополнение
// @description - Разрешение структурированного адреса, почтового индекса, координат или IP
// @description - Гидрация мест по ID с lineage и локализованными названиями

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/place-resolver/docs/swagger"
	"github.com/place-resolver/internal/config"
	httpDelivery "github.com/place-resolver/internal/delivery/http"
	"github.com/place-resolver/internal/delivery/http/handler"
	"github.com/place-resolver/internal/domain/repository"
	"github.com/place-resolver/internal/infrastructure/geoip"
	"github.com/place-resolver/internal/infrastructure/textindex"
	"github.com/place-resolver/internal/pkg/logger"
	"github.com/place-resolver/internal/repository/cache"
	"github.com/place-resolver/internal/repository/postgres"
	"github.com/place-resolver/internal/usecase"
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

	log.Info("Starting Place Resolver")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// 3. Connect to PostgreSQL and verify schema
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.Database.AutoMigrate {
		if err := db.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to create schema", zap.Error(err))
		}
	}
	if err := db.CheckSchema(ctx); err != nil {
		log.Fatal("Schema check failed", zap.Error(err))
	}

	// 4. Redis - только если включен кэш
	checks := map[string]handler.HealthChecker{"postgres": db}

	var cacheRepo repository.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		cacheRepo = cache.NewCacheRepository(redisClient)
		checks["redis"] = redisClient
	}

	// 5. Repositories
	store := postgres.NewDocumentRepository(db)
	refs := postgres.NewReferenceRepository(db)

	// 6. Text index; пустой индекс строится из хранилища
	index, err := textindex.Open(cfg.TextIndex.Path, cfg.TextIndex.MaxCandidates, log)
	if err != nil {
		log.Fatal("Failed to open text index", zap.Error(err))
	}
	defer func() {
		if err := index.Close(); err != nil {
			log.Error("Failed to close text index", zap.Error(err))
		}
	}()

	if count, err := index.DocCount(); err != nil {
		log.Fatal("Failed to read text index", zap.Error(err))
	} else if count == 0 {
		indexed, err := index.BuildFromStore(context.Background(), store, cfg.TextIndex.BatchSize)
		if err != nil {
			log.Fatal("Failed to build text index", zap.Error(err))
		}
		log.Info("Text index built", zap.Int("documents", indexed))
	}

	// 7. GeoIP (опционально)
	locator, err := geoip.Open(cfg.GeoIP.Path, log)
	if err != nil {
		log.Fatal("Failed to open GeoIP database", zap.Error(err))
	}
	defer func() {
		if err := locator.Close(); err != nil {
			log.Error("Failed to close GeoIP database", zap.Error(err))
		}
	}()

	// 8. Use cases
	hydrator := usecase.NewResultHydrator(store, log)
	resolver := usecase.NewAddressResolver(store, refs, index, hydrator, locator, cfg.Resolver, log)
	searchUC := usecase.NewSearchUseCase(index, resolver, hydrator, cacheRepo, log, cfg.Cache.SearchCacheTTL)
	statsUC := usecase.NewStatsUseCase(store, index, cacheRepo, log)

	log.Info("Use cases initialized")

	// 9. HTTP
	searchHandler := handler.NewSearchHandler(searchUC, log, cfg.Server.RequestTimeout)
	statsHandler := handler.NewStatsHandler(statsUC, checks, log)

	server := httpDelivery.NewServer(cfg, log, searchHandler, statsHandler)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
