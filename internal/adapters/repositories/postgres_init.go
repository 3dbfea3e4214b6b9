package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"traffic-route-service/internal/domain"
)

// Initialize the Postgres schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createIntersectionsQuery := `
	CREATE TABLE IF NOT EXISTS intersections (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		capacity INTEGER NOT NULL DEFAULT 100
	);
	`

	createRoadsQuery := `
	CREATE TABLE IF NOT EXISTS roads (
		id BIGINT PRIMARY KEY,
		from_intersection_id BIGINT NOT NULL REFERENCES intersections(id) ON DELETE CASCADE,
		to_intersection_id BIGINT NOT NULL REFERENCES intersections(id) ON DELETE CASCADE,
		distance_km DOUBLE PRECISION NOT NULL,
		capacity INTEGER NOT NULL DEFAULT 50,
		speed_limit DOUBLE PRECISION NOT NULL DEFAULT 0,
		current_traffic INTEGER NOT NULL DEFAULT 0,
		traffic_level TEXT NOT NULL DEFAULT 'low',
		travel_time DOUBLE PRECISION NOT NULL DEFAULT 0
	);
	`

	createSignalsQuery := `
	CREATE TABLE IF NOT EXISTS phone_signals (
		id BIGSERIAL PRIMARY KEY,
		device_id TEXT NOT NULL,
		road_id BIGINT NOT NULL REFERENCES roads(id) ON DELETE CASCADE,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		observed_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_phone_signals_road_observed
	ON phone_signals(road_id, observed_at);
	`

	statements := []string{
		createIntersectionsQuery,
		createRoadsQuery,
		createSignalsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Upsert intersections and roads in one transaction.
func SeedNetwork(ctx context.Context, db *sql.DB, nodes []domain.Node, roads []domain.Edge) error {
	if db == nil {
		return errors.New("seed network: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed network: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	nodeStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO intersections (id, name, latitude, longitude, capacity)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		capacity = EXCLUDED.capacity;
	`)
	if err != nil {
		return fmt.Errorf("seed network: prepare intersections: %w", err)
	}
	defer nodeStmt.Close()

	for _, n := range nodes {
		if _, err := nodeStmt.ExecContext(ctx, n.ID, n.Name, n.Coordinates.Lat, n.Coordinates.Lon, n.Capacity); err != nil {
			return fmt.Errorf("seed network: insert intersection id=%d: %w", n.ID, err)
		}
	}

	roadStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO roads (
		id,
		from_intersection_id,
		to_intersection_id,
		distance_km,
		capacity,
		speed_limit,
		current_traffic,
		traffic_level,
		travel_time
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO UPDATE
	SET from_intersection_id = EXCLUDED.from_intersection_id,
		to_intersection_id = EXCLUDED.to_intersection_id,
		distance_km = EXCLUDED.distance_km,
		capacity = EXCLUDED.capacity,
		speed_limit = EXCLUDED.speed_limit,
		current_traffic = EXCLUDED.current_traffic,
		traffic_level = EXCLUDED.traffic_level,
		travel_time = EXCLUDED.travel_time;
	`)
	if err != nil {
		return fmt.Errorf("seed network: prepare roads: %w", err)
	}
	defer roadStmt.Close()

	for _, r := range roads {
		_, err := roadStmt.ExecContext(ctx,
			r.ID, r.From, r.To, r.Distance, r.Capacity, r.SpeedLimit,
			r.CurrentTraffic, r.TrafficLevel.String(), r.TravelTime,
		)
		if err != nil {
			return fmt.Errorf("seed network: insert road id=%d: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed network: commit tx: %w", err)
	}

	return nil
}
