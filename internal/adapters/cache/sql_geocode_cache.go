package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"geo-pricing-service/internal/domain"
)

// SQLGeocodeCache is a Postgres-backed geocode cache shared across
// instances and restarts. Keys are normalized addresses.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

func (s *SQLGeocodeCache) Get(ctx context.Context, key string) (domain.Coordinates, bool, error) {
	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	q := `
	SELECT latitude, longitude
	FROM geocode_cache
	WHERE address = $1;
	`

	var lat, lon float64
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&lat, &lon)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Coordinates{}, false, nil
	}
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return domain.Coordinates{Latitude: lat, Longitude: lon}, true, nil
}

func (s *SQLGeocodeCache) Put(ctx context.Context, key string, coords domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}
	if key == "" {
		return errors.New("insert geocode cache: empty address key")
	}

	q := `
	INSERT INTO geocode_cache (address, latitude, longitude, inserted_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (address) DO UPDATE
	SET latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		inserted_at = EXCLUDED.inserted_at;
	`

	if _, err := s.DB.ExecContext(ctx, q, key, coords.Latitude, coords.Longitude); err != nil {
		return fmt.Errorf("insert geocode cache key=%q: %w", key, err)
	}

	return nil
}
