package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ayush-verma1708/backend-crm/cache"
	"github.com/ayush-verma1708/backend-crm/config"
	"github.com/ayush-verma1708/backend-crm/handler"
	"github.com/ayush-verma1708/backend-crm/logging"
	"github.com/ayush-verma1708/backend-crm/middleware"
	"github.com/ayush-verma1708/backend-crm/router"
	"github.com/ayush-verma1708/backend-crm/service"
	"github.com/ayush-verma1708/backend-crm/storage/mongostore"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := config.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	slog.Info("Connected to MongoDB", "database", cfg.MongoDatabase)

	listCache, err := buildCache(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	slog.Info("Cache initialized", "backend", cfg.CacheBackend, "ttl", cfg.CacheTTL)

	store := mongostore.New(db)
	listSvc := service.NewListService(store, listCache)
	recordSvc := service.NewRecordService(store)
	lookupSvc := service.NewLookupService(store)
	h := handler.NewRecordHandler(listSvc, recordSvc, lookupSvc)

	engine := gin.New()
	engine.Use(middleware.RequestLogger(), gin.Recovery())
	router.SetupRouters(engine, h)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	slog.Info("Listening", "addr", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start the server: %v", err)
	}
}

func buildCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	if cfg.CacheBackend == config.CacheBackendRedis {
		return cache.NewRedis(ctx, cfg.RedisAddress, cfg.CacheTTL)
	}
	memCfg := cache.DefaultMemoryConfig()
	memCfg.TTL = cfg.CacheTTL
	return cache.NewMemory(memCfg)
}
