package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"traffic-route-service/internal/domain"
	"traffic-route-service/internal/platform/obs"
	"traffic-route-service/internal/ports"
)

// Postgres-backed implementation of NetworkRepository, RoadTrafficWriter and
// SignalStore. Queries run through the pgx database/sql driver.
type PostgresNetworkRepository struct{ DB *sql.DB }

func NewPostgresNetworkRepository(db *sql.DB) *PostgresNetworkRepository {
	return &PostgresNetworkRepository{DB: db}
}

const roadColumns = `
	id,
	from_intersection_id,
	to_intersection_id,
	distance_km,
	capacity,
	speed_limit,
	current_traffic,
	traffic_level,
	travel_time
`

// Return all intersections ordered by id.
func (p *PostgresNetworkRepository) ListIntersections(ctx context.Context) (_ []domain.Node, err error) {
	defer obs.Time(ctx, "network.pg.ListIntersections")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres network repository: DB is nil")
	}

	rows, err := p.DB.QueryContext(ctx, `
	SELECT id, name, latitude, longitude, capacity
	FROM intersections
	ORDER BY id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list intersections: query intersections table: %w", err)
	}
	defer rows.Close()

	nodes := make([]domain.Node, 0, 64)
	for rows.Next() {
		var n domain.Node
		if err := rows.Scan(&n.ID, &n.Name, &n.Coordinates.Lat, &n.Coordinates.Lon, &n.Capacity); err != nil {
			return nil, fmt.Errorf("list intersections: scan row: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list intersections: row iteration: %w", err)
	}

	return nodes, nil
}

// Return all roads ordered by id, so duplicate pairs resolve to the oldest road.
func (p *PostgresNetworkRepository) ListRoads(ctx context.Context) (_ []domain.Edge, err error) {
	defer obs.Time(ctx, "network.pg.ListRoads")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres network repository: DB is nil")
	}

	rows, err := p.DB.QueryContext(ctx, `SELECT `+roadColumns+` FROM roads ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("list roads: query roads table: %w", err)
	}
	defer rows.Close()

	roads := make([]domain.Edge, 0, 128)
	for rows.Next() {
		e, err := scanRoad(rows)
		if err != nil {
			return nil, fmt.Errorf("list roads: %w", err)
		}
		roads = append(roads, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list roads: row iteration: %w", err)
	}

	return roads, nil
}

func (p *PostgresNetworkRepository) GetRoad(ctx context.Context, id int64) (domain.Edge, error) {
	if p.DB == nil {
		return domain.Edge{}, errors.New("postgres network repository: DB is nil")
	}

	row := p.DB.QueryRowContext(ctx, `SELECT `+roadColumns+` FROM roads WHERE id = $1;`, id)
	e, err := scanRoad(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Edge{}, fmt.Errorf("get road %d: %w", id, ports.ErrNotFound)
	}
	if err != nil {
		return domain.Edge{}, fmt.Errorf("get road %d: %w", id, err)
	}

	return e, nil
}

func (p *PostgresNetworkRepository) UpdateRoadTraffic(ctx context.Context, edge domain.Edge) error {
	if p.DB == nil {
		return errors.New("postgres network repository: DB is nil")
	}

	res, err := p.DB.ExecContext(ctx, `
	UPDATE roads
	SET current_traffic = $2,
		traffic_level = $3,
		travel_time = $4
	WHERE id = $1;
	`, edge.ID, edge.CurrentTraffic, edge.TrafficLevel.String(), edge.TravelTime)
	if err != nil {
		return fmt.Errorf("update road traffic %d: %w", edge.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update road traffic %d: rows affected: %w", edge.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update road traffic %d: %w", edge.ID, ports.ErrNotFound)
	}

	return nil
}

func (p *PostgresNetworkRepository) RecordSignal(ctx context.Context, signal domain.Signal) error {
	if p.DB == nil {
		return errors.New("postgres network repository: DB is nil")
	}

	_, err := p.DB.ExecContext(ctx, `
	INSERT INTO phone_signals (device_id, road_id, latitude, longitude, observed_at)
	VALUES ($1, $2, $3, $4, $5);
	`, signal.DeviceID, signal.EdgeID, signal.Coordinates.Lat, signal.Coordinates.Lon, signal.Timestamp)
	if err != nil {
		return fmt.Errorf("record signal road=%d: %w", signal.EdgeID, err)
	}

	return nil
}

func (p *PostgresNetworkRepository) CountDistinctDevices(ctx context.Context, edgeID int64, since time.Time) (_ int, err error) {
	defer obs.Time(ctx, "signals.pg.Count")(&err)

	if p.DB == nil {
		return 0, errors.New("postgres network repository: DB is nil")
	}

	var n int
	err = p.DB.QueryRowContext(ctx, `
	SELECT COUNT(DISTINCT device_id)
	FROM phone_signals
	WHERE road_id = $1
		AND observed_at >= $2;
	`, edgeID, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count distinct devices road=%d: %w", edgeID, err)
	}

	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoad(r rowScanner) (domain.Edge, error) {
	var (
		e     domain.Edge
		level string
	)
	err := r.Scan(
		&e.ID,
		&e.From,
		&e.To,
		&e.Distance,
		&e.Capacity,
		&e.SpeedLimit,
		&e.CurrentTraffic,
		&level,
		&e.TravelTime,
	)
	if err != nil {
		return domain.Edge{}, fmt.Errorf("scan road: %w", err)
	}

	e.TrafficLevel, err = domain.ParseTrafficLevel(level)
	if err != nil {
		return domain.Edge{}, fmt.Errorf("scan road %d: %w", e.ID, err)
	}

	return e, nil
}
