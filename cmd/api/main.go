package main

// @title Organization Directory API
// @version 1.0.0
// @description Справочник организаций, зданий и видов деятельности.
// @description
// @description Основные возможности:
// @description - CRUD для организаций, зданий, телефонов и дерева видов деятельности
// @description - Поиск организаций по виду деятельности с учётом вложенных
// @description - Гео-фильтры: радиус вокруг точки и прямоугольная область

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	_ "github.com/org-directory/docs"
	"github.com/org-directory/internal/config"
	httpDelivery "github.com/org-directory/internal/delivery/http"
	"github.com/org-directory/internal/delivery/http/handler"
	"github.com/org-directory/internal/domain/repository"
	"github.com/org-directory/internal/pkg/logger"
	"github.com/org-directory/internal/repository/cache"
	"github.com/org-directory/internal/repository/memory"
	"github.com/org-directory/internal/repository/sqlstore"
	"github.com/org-directory/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Organization Directory")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("cache", cfg.Cache.Backend),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 3. Storage
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open storage", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Failed to close storage", zap.Error(err))
		}
	}()
	log.Info("Storage ready", zap.String("driver", cfg.Storage.Driver))

	// 4. Response cache
	healthChecks := map[string]handler.Pinger{"storage": store}

	var cacheStorage fiber.Storage
	if cfg.Cache.Backend == config.CacheBackendRedis {
		redisClient, err := cache.NewRedis(cfg, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()

		cacheRepo := cache.NewCacheRepository(redisClient)
		cacheStorage = cache.NewResponseStorage(cacheRepo)
		healthChecks["cache"] = cacheRepo
	}

	// 5. Use cases
	depth := cfg.Query.ActivitiesDepth
	tree := usecase.NewActivityTree(store.Activities(), log)

	organizationUC := usecase.NewOrganizationUseCase(
		store,
		store.Organizations(),
		store.Buildings(),
		store.Activities(),
		store.PhoneNumbers(),
		tree,
		depth,
		log,
	)
	activityUC := usecase.NewActivityUseCase(store, store.Activities(), tree, depth, log)
	buildingUC := usecase.NewBuildingUseCase(store, store.Buildings(), log)
	phoneNumberUC := usecase.NewPhoneNumberUseCase(store.PhoneNumbers(), log)
	fillerUC := usecase.NewFillerUseCase(store, log)

	log.Info("Use cases initialized")

	// 6. HTTP
	server := httpDelivery.NewServer(cfg, log, httpDelivery.Handlers{
		Organization: handler.NewOrganizationHandler(organizationUC, log),
		Activity:     handler.NewActivityHandler(activityUC, log),
		Building:     handler.NewBuildingHandler(buildingUC, log),
		PhoneNumber:  handler.NewPhoneNumberHandler(phoneNumberUC, log),
		Filler:       handler.NewFillerHandler(fillerUC, log),
		Health:       handler.NewHealthHandler(healthChecks, log),
	}, cacheStorage)

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}

// openStore connects the backend selected by STORAGE_DRIVER and applies the
// schema when configured.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.Store, error) {
	var db *sqlstore.DB
	var err error

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		return memory.NewStore(log, cfg.Query.EarthRadiusM), nil
	case config.StorageDriverSQLite:
		db, err = sqlstore.NewSQLite(cfg.SQLite.Path, log)
	default:
		db, err = sqlstore.NewPostgres(cfg, log)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Health(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage health check: %w", err)
	}

	if cfg.Storage.ApplySchema {
		if err := db.ApplySchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
		log.Info("Database schema applied")
	}

	return sqlstore.NewStore(db, cfg.Query.EarthRadiusM), nil
}
