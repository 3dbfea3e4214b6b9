package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"traffic-route-service/internal/adapters/repositories"
	"traffic-route-service/internal/adapters/seed"
	"traffic-route-service/internal/config"
	"traffic-route-service/internal/platform/db"
	"traffic-route-service/internal/platform/obs"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found (using environment variables)")
	}
	slog.SetDefault(obs.NewLogger(os.Stdout, config.Get("LOG_LEVEL", "info")))

	seedPath := flag.String("seed", config.Get("SEED_PATH", "data/seeds/network.json"), "network seed file")
	schemaOnly := flag.Bool("schema-only", false, "create tables without seeding")
	flag.Parse()

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		slog.Error("open database", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer conn.Close()

	if err := initAndSeed(context.Background(), conn, *seedPath, *schemaOnly); err != nil {
		slog.Error("dbtool failed", slog.String("err", err.Error()))
		conn.Close()
		os.Exit(1)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, seedPath string, schemaOnly bool) error {
	slog.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	slog.Info("schema ready")

	if schemaOnly {
		return nil
	}

	slog.Info("seeding database", slog.String("path", seedPath))
	nodes, roads, err := seed.LoadFile(seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	if err := repositories.SeedNetwork(ctx, conn, nodes, roads); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	slog.Info("seeding complete", slog.Int("intersections", len(nodes)), slog.Int("roads", len(roads)))

	return nil
}
