package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
	"traffic-route-service/internal/adapters/cache"
	"traffic-route-service/internal/adapters/memory"
	"traffic-route-service/internal/adapters/repositories"
	"traffic-route-service/internal/adapters/seed"
	"traffic-route-service/internal/api"
	"traffic-route-service/internal/config"
	"traffic-route-service/internal/platform/db"
	"traffic-route-service/internal/platform/metrics"
	"traffic-route-service/internal/platform/obs"
	"traffic-route-service/internal/ports"
	"traffic-route-service/internal/services"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres or in-memory, optional Redis) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", slog.String("err", err.Error()))
		os.Exit(1)
	}
	slog.SetDefault(obs.NewLogger(os.Stdout, cfg.LogLevel))

	deps, closeFn, err := buildDeps(context.Background(), cfg)
	if err != nil {
		slog.Error("startup", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer closeFn()

	router := api.NewRouter(deps)

	// Timeouts leave room for all-pairs solves on large networks.
	slog.Info("server listening", slog.String("addr", ":"+cfg.Port), slog.String("backend", cfg.Backend))
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server stopped", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

func buildDeps(ctx context.Context, cfg config.Config) (api.Deps, func(), error) {
	deps := api.Deps{
		SignalWindow:  cfg.SignalWindow,
		TrafficWindow: cfg.TrafficWindow,
		Solver:        services.SolverOptions{Workers: cfg.SolverWorkers, ParallelThreshold: services.DefaultSolverOptions().ParallelThreshold},
		Metrics:       metrics.NewRegistry(),
	}
	closers := []func(){}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Backend {
	case "postgres":
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return api.Deps{}, closeAll, fmt.Errorf("build deps: %w", err)
		}
		closers = append(closers, func() { _ = conn.Close() })

		if err := initAndSeed(ctx, conn, cfg.SeedPath); err != nil {
			closeAll()
			return api.Deps{}, func() {}, fmt.Errorf("build deps: %w", err)
		}

		repo := repositories.NewPostgresNetworkRepository(conn)
		deps.Repo, deps.Writer, deps.Signals = repo, repo, repo
	default:
		nodes, roads, err := seed.LoadFile(cfg.SeedPath)
		if err != nil {
			return api.Deps{}, closeAll, fmt.Errorf("build deps: %w", err)
		}
		network := memory.NewNetwork(nodes, roads)
		deps.Repo, deps.Writer, deps.Signals = network, network, network
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			closeAll()
			return api.Deps{}, func() {}, fmt.Errorf("build deps: redis %s: %w", cfg.RedisAddr, err)
		}
		closers = append(closers, func() { _ = client.Close() })
		deps.Signals = signalStore(client, cfg)
	}

	return deps, closeAll, nil
}

// signalStore keeps device sets long enough to serve both the ingestion
// window and the route traffic window.
func signalStore(client *redis.Client, cfg config.Config) ports.SignalStore {
	retention := cfg.SignalWindow
	if cfg.TrafficWindow > retention {
		retention = cfg.TrafficWindow
	}
	return cache.NewRedisSignalStore(client, retention)
}

// initAndSeed creates the schema and loads the seed network when a seed file is configured.
func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if seedPath == "" {
		return nil
	}
	if _, err := os.Stat(seedPath); err != nil {
		slog.Warn("seed file unavailable, skipping", slog.String("path", seedPath), slog.String("err", err.Error()))
		return nil
	}

	nodes, roads, err := seed.LoadFile(seedPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if err := repositories.SeedNetwork(ctx, conn, nodes, roads); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	return nil
}
