package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/freshconnect/api/internal/adapters/geolocation"
	"github.com/freshconnect/api/internal/adapters/http"
	"github.com/freshconnect/api/internal/adapters/memory"
	natsadapter "github.com/freshconnect/api/internal/adapters/nats"
	"github.com/freshconnect/api/internal/adapters/postgres"
	"github.com/freshconnect/api/internal/adapters/storage"
	"github.com/freshconnect/api/internal/adapters/valkey"
	"github.com/freshconnect/api/internal/core/domain"
	"github.com/freshconnect/api/internal/core/ports"
	"github.com/freshconnect/api/internal/core/usecases"
	"github.com/freshconnect/api/internal/pkg/config"
	"github.com/freshconnect/api/internal/pkg/logging"
	"github.com/freshconnect/api/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("freshconnect-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup("freshconnect-api", cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Storage backend
	var (
		kv ports.KeyValueStore
		db *postgres.DB
	)
	switch cfg.Storage.Backend {
	case "postgres":
		db, err = postgres.New(ctx, cfg.Storage.Postgres.DSN())
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		kv = postgres.NewKVStore(db)
	case "valkey":
		store, err := valkey.NewKVStore(cfg.Valkey.Addr)
		if err != nil {
			log.Fatalf("valkey storage: %v", err)
		}
		defer store.Close()
		kv = store
	case "memory":
		kv = memory.NewKVStore()
	default:
		log.Fatalf("unknown storage backend: %s", cfg.Storage.Backend)
	}
	gateway := storage.NewGateway(kv)

	// Cache
	var cache *valkey.Cache
	if cfg.Valkey.Addr != "" {
		cache, err = valkey.New(cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey cache unavailable", "error", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	// NATS
	var events ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		events = pub
		defer pub.Close()
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Location provider
	provider, err := geolocation.NewProvider(geolocation.ProviderConfig{
		Type:    geolocation.ProviderType(cfg.Geolocation.Provider),
		BaseURL: cfg.Geolocation.IPAPIBase,
		Static: domain.UserLocation{
			GeoPoint: domain.GeoPoint{Lat: cfg.Geolocation.StaticLat, Lon: cfg.Geolocation.StaticLon},
			Accuracy: cfg.Geolocation.StaticAcc,
		},
		Logger: slog.Default(),
	})
	if err != nil {
		log.Fatalf("location provider: %v", err)
	}

	// Use cases
	var cacheSvc ports.CacheService
	if cache != nil {
		cacheSvc = cache
	}
	discoverySvc := usecases.NewDiscoveryService(gateway, gateway.Items(), cacheSvc)
	inventorySvc := usecases.NewInventoryService(gateway, gateway.Items(), events, slog.Default())
	authSvc := usecases.NewAuthService(gateway.Credentials(), gateway, gateway)
	locationSvc := usecases.NewLocationService(provider, gateway,
		time.Duration(cfg.Geolocation.TimeoutMs)*time.Millisecond)

	deps := &http.Dependencies{
		Discovery:   discoverySvc,
		Inventory:   inventorySvc,
		Auth:        authSvc,
		Location:    locationSvc,
		NATS:        natsConn,
		DB:          db,
		Cache:       cache,
		GeoProvider: cfg.Geolocation.Provider,
		JWTSecret:   cfg.Auth.JWTSecret,
		TokenTTL:    time.Duration(cfg.Auth.TokenTTLMins) * time.Minute,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "FreshConnect API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
