package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/sortlist/internal/adapter/eventpublisher"
	"github.com/pscheid92/sortlist/internal/adapter/httpserver"
	"github.com/pscheid92/sortlist/internal/adapter/metrics"
	"github.com/pscheid92/sortlist/internal/adapter/redis"
	"github.com/pscheid92/sortlist/internal/adapter/websocket"
	"github.com/pscheid92/sortlist/internal/app"
	"github.com/pscheid92/sortlist/internal/catalog"
	"github.com/pscheid92/sortlist/internal/platform/config"
	"github.com/pscheid92/sortlist/internal/platform/logging"
	"github.com/pscheid92/sortlist/internal/platform/version"
	"github.com/pscheid92/sortlist/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// setupRedis returns nil when REDIS_URL is unset; change events then stay local.
func setupRedis(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) *goredis.Client {
	if cfg.RedisURL == "" {
		slog.Info("REDIS_URL not set, change events are not fanned out across instances")
		return nil
	}

	client, err := redis.NewClient(ctx, cfg.RedisURL, metrics.NewRedisMetrics(reg))
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(cfg *config.Config, srv *httpserver.Server, hub *websocket.Hub) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		hub.Stop()
		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "version", version.Version)

	reg := metrics.NewRegistry()

	cat, err := catalog.New(cfg.CatalogSize)
	if err != nil {
		slog.Error("Failed to build catalog", "error", err)
		os.Exit(1)
	}
	listStore := store.New(cat.IDs())

	hub := websocket.NewHub(websocket.NewCheckOrigin(cfg.AllowedOrigins()), metrics.NewWebSocketMetrics(reg))

	targets := []eventpublisher.Target{{Name: "websocket", Publisher: hub}}
	var healthChecks []httpserver.HealthCheck

	redisClient := setupRedis(context.Background(), cfg, reg)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()

		redisPublisher := redis.NewPublisher(redisClient)
		targets = append(targets, eventpublisher.Target{Name: "redis", Publisher: redisPublisher})
		healthChecks = append(healthChecks, httpserver.HealthCheck{Name: "redis", Check: redisPublisher.Ping})
	}

	listSvc := app.NewService(cat, listStore, eventpublisher.New(targets...), metrics.NewListMetrics(reg), clock, app.Limits{
		DefaultLimit: cfg.ListDefaultLimit,
		MaxLimit:     cfg.ListMaxLimit,
	})

	srv := httpserver.NewServer(cfg, httpserver.Deps{
		List:           listSvc,
		Feed:           hub,
		MetricsHandler: metrics.Handler(reg),
		HTTPMetrics:    metrics.NewHTTPMetrics(reg),
		HealthChecks:   healthChecks,
		Clock:          clock,
	})

	done := runGracefulShutdown(cfg, srv, hub)

	slog.Info("Server starting", "port", cfg.Port, "items", cat.Len())
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
