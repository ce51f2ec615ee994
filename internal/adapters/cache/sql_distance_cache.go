package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"geo-pricing-service/internal/ports"
)

// SQLDistanceCache is a Postgres-backed distance cache. A batch is stored
// as ordered rows under one batch key and read back as a whole; rows older
// than the TTL are treated as absent.
type SQLDistanceCache struct {
	DB  *sql.DB
	TTL time.Duration
}

func NewSQLDistanceCache(db *sql.DB, ttl time.Duration) *SQLDistanceCache {
	if ttl <= 0 {
		ttl = DefaultDistanceTTL
	}
	return &SQLDistanceCache{DB: db, TTL: ttl}
}

func (s *SQLDistanceCache) Get(ctx context.Context, key string) ([]ports.DistanceResult, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("distance cache: db is nil")
	}

	q := `
	SELECT distance_miles, duration_minutes
	FROM distance_cache
	WHERE batch_key = $1
		AND inserted_at > now() - $2::interval
	ORDER BY position;
	`

	interval := fmt.Sprintf("%d seconds", int(s.TTL.Seconds()))

	rows, err := s.DB.QueryContext(ctx, q, key, interval)
	if err != nil {
		return nil, false, fmt.Errorf("get distance cache: query distance_cache table: %w", err)
	}
	defer rows.Close()

	var results []ports.DistanceResult
	for rows.Next() {
		var r ports.DistanceResult
		if err := rows.Scan(&r.DistanceMiles, &r.DurationMinutes); err != nil {
			return nil, false, fmt.Errorf("get distance cache: scan rows: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("get distance cache: row iteration: %w", err)
	}

	if len(results) == 0 {
		return nil, false, nil
	}
	return results, true, nil
}

func (s *SQLDistanceCache) Put(ctx context.Context, key string, results []ports.DistanceResult) error {
	if s.DB == nil {
		return errors.New("distance cache: db is nil")
	}
	if key == "" {
		return errors.New("insert distance cache: empty batch key")
	}
	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert distance cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Replace the batch wholesale so a shorter batch never leaves stale
	// trailing rows behind.
	if _, err := tx.ExecContext(ctx, `DELETE FROM distance_cache WHERE batch_key = $1;`, key); err != nil {
		return fmt.Errorf("insert distance cache: clear batch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO distance_cache (batch_key, position, distance_miles, duration_minutes, inserted_at)
	VALUES ($1, $2, $3, $4, now());
	`)
	if err != nil {
		return fmt.Errorf("insert distance cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for i, r := range results {
		if _, err := stmt.ExecContext(ctx, key, i, r.DistanceMiles, r.DurationMinutes); err != nil {
			return fmt.Errorf("insert distance cache position=%d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert distance cache commit: %w", err)
	}

	return nil
}
