package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kiranshivaraju/latencybench/pkg/models"
	"github.com/shopspring/decimal"
)

// PostgresStore implements the Store interface using pgx/v5.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// --- Reference data ---

func (s *PostgresStore) ListFunctions(ctx context.Context) ([]models.FunctionRegion, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, region_code, region_label, platform::text
		 FROM functions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list functions: %w", err)
	}
	defer rows.Close()

	fns := []models.FunctionRegion{}
	for rows.Next() {
		var f models.FunctionRegion
		if err := rows.Scan(&f.ID, &f.Name, &f.RegionCode, &f.RegionLabel, &f.Platform); err != nil {
			return nil, fmt.Errorf("scan function: %w", err)
		}
		fns = append(fns, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list functions: %w", err)
	}
	return fns, nil
}

// ListDatabases never selects connection_url or neon_project_id.
func (s *PostgresStore) ListDatabases(ctx context.Context) ([]models.DatabaseTarget, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, provider, region_code, region_label, function_id, connection_method::text
		 FROM databases ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}
	defer rows.Close()

	dbs := []models.DatabaseTarget{}
	for rows.Next() {
		var (
			d      models.DatabaseTarget
			method string
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.Provider, &d.RegionCode, &d.RegionLabel, &d.FunctionID, &method); err != nil {
			return nil, fmt.Errorf("scan database: %w", err)
		}
		d.ConnectionMethod = models.ConnectionMethod(method)
		dbs = append(dbs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list databases: %w", err)
	}
	return dbs, nil
}

// GetDatabase returns ErrNotFound for an unknown id.
func (s *PostgresStore) GetDatabase(ctx context.Context, id int) (*models.DatabaseTarget, error) {
	var (
		d      models.DatabaseTarget
		method string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, provider, region_code, region_label, function_id, connection_method::text
		 FROM databases WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.Provider, &d.RegionCode, &d.RegionLabel, &d.FunctionID, &method)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get database %d: %w", id, err)
	}
	d.ConnectionMethod = models.ConnectionMethod(method)
	return &d, nil
}

// --- Observations ---

const observationColumns = `function_id, database_id, query_type::text, latency_ms::text, date_time`

func (s *PostgresStore) ListObservationsSince(ctx context.Context, since time.Time) ([]models.Observation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+observationColumns+`
		 FROM stats WHERE date_time >= $1
		 ORDER BY date_time, id`, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("list observations: %w", err)
	}
	return collectObservations(rows)
}

func (s *PostgresStore) ListObservationsForDatabase(ctx context.Context, databaseID int, since time.Time) ([]models.Observation, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+observationColumns+`
		 FROM stats WHERE database_id = $1 AND date_time >= $2
		 ORDER BY date_time, id`, databaseID, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("list observations for database %d: %w", databaseID, err)
	}
	return collectObservations(rows)
}

func collectObservations(rows pgx.Rows) ([]models.Observation, error) {
	defer rows.Close()

	out := []models.Observation{}
	for rows.Next() {
		var (
			o         models.Observation
			queryType string
			latency   string
		)
		if err := rows.Scan(&o.FunctionID, &o.DatabaseID, &queryType, &latency, &o.Timestamp); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		ms, err := decimal.NewFromString(latency)
		if err != nil {
			return nil, fmt.Errorf("parse latency %q: %w", latency, err)
		}
		o.QueryType = models.QueryType(queryType)
		o.LatencyMs = ms
		o.Timestamp = o.Timestamp.UTC()
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list observations: %w", err)
	}
	return out, nil
}

// AverageLatencySince computes the grouped average in the database, one row
// per (function, database, query type) with at least one observation.
func (s *PostgresStore) AverageLatencySince(ctx context.Context, since time.Time) ([]models.AvgStat, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT function_id, database_id, query_type::text, AVG(latency_ms)::text, COUNT(*)
		 FROM stats WHERE date_time >= $1
		 GROUP BY function_id, database_id, query_type
		 ORDER BY function_id, database_id, query_type`, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("average latency: %w", err)
	}
	defer rows.Close()

	out := []models.AvgStat{}
	for rows.Next() {
		var (
			st        models.AvgStat
			queryType string
			avg       *string
		)
		if err := rows.Scan(&st.FunctionID, &st.DatabaseID, &queryType, &avg, &st.Samples); err != nil {
			return nil, fmt.Errorf("scan average: %w", err)
		}
		st.QueryType = models.QueryType(queryType)
		if avg != nil {
			d, err := decimal.NewFromString(*avg)
			if err != nil {
				return nil, fmt.Errorf("parse average %q: %w", *avg, err)
			}
			st.AvgLatencyMs = &d
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("average latency: %w", err)
	}
	return out, nil
}
