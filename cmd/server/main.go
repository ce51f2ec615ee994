package main

import (
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"geo-pricing-service/internal/adapters/cache"
	"geo-pricing-service/internal/adapters/locations"
	"geo-pricing-service/internal/adapters/provider"
	"geo-pricing-service/internal/adapters/telemetry"
	"geo-pricing-service/internal/api"
	"geo-pricing-service/internal/api/handlers"
	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/platform/config"
	"geo-pricing-service/internal/platform/db"
	"geo-pricing-service/internal/platform/logging"
	"geo-pricing-service/internal/ports"
	"geo-pricing-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root. It wires concrete adapters
// (Redis, Postgres, the mapping provider) behind ports and starts the
// HTTP server.
func main() {
	log := logging.New("geo-pricing-service", os.Getenv("APP_ENV"))

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	mapProvider, err := buildProvider(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build map provider")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	geocodeCache, distanceCache, closeDB, err := buildCaches(cfg, redisClient)
	if err != nil {
		log.Fatal().Err(err).Msg("build caches")
	}
	defer closeDB()

	var usage ports.UsageRecorder
	if redisClient != nil {
		usage = telemetry.NewRedisRecorder(redisClient, telemetry.DefaultUsageChannel)
	} else {
		usage = telemetry.NewLogRecorder(log)
	}

	limiter := services.NewSlidingWindowLimiter(cfg.Engine.RateLimit, cfg.Engine.RateWindow)
	geocodes := services.NewGeocodeResolver(mapProvider, geocodeCache, limiter, usage, log)
	distances := services.NewDistanceResolver(mapProvider, distanceCache, limiter, usage, log)

	// The engine's own store backs the library API; HTTP callers get a
	// session-scoped store from the factory instead.
	engine := services.NewEngine(geocodes, distances, locations.NewMemoryStore(), log)
	router := api.NewRouter(engine, locationStores(redisClient), log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info().Str("addr", addr).Str("provider", cfg.Provider.Kind).Msg("server listening")

	// Timeouts are tuned for cold-cache quoting (external API latency).
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}

func buildProvider(cfg *config.Config) (ports.MapProvider, error) {
	switch cfg.Provider.Kind {
	case "http":
		return provider.NewHTTPMapProvider(cfg.Provider.APIKey, cfg.Provider.BaseURL)
	case "mock":
		return provider.NewMockMapProvider(demoAddresses()), nil
	default:
		return nil, fmt.Errorf("unknown MAP_PROVIDER %q", cfg.Provider.Kind)
	}
}

// buildCaches picks the cache backend by configuration priority: Postgres
// when DATABASE_URL is set, Redis when enabled, in-process memory
// otherwise. The returned func closes the database handle, if any.
func buildCaches(cfg *config.Config, redisClient *redis.Client) (ports.GeocodeCache, ports.DistanceCache, func(), error) {
	if cfg.Database.URL != "" {
		sqlDB, err := db.Open(cfg.Database.URL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := cache.InitSchema(sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, nil, err
		}
		return cache.NewSQLGeocodeCache(sqlDB),
			cache.NewSQLDistanceCache(sqlDB, cfg.Engine.DistanceCacheTTL),
			func() { sqlDB.Close() },
			nil
	}

	if redisClient != nil {
		return cache.NewRedisGeocodeCache(redisClient),
			cache.NewRedisDistanceCache(redisClient, cfg.Engine.DistanceCacheTTL),
			func() {},
			nil
	}

	return cache.NewMemoryGeocodeCache(),
		cache.NewMemoryDistanceCache(cfg.Engine.DistanceCacheTTL),
		func() {},
		nil
}

// locationStores returns the per-session location store factory. With
// Redis the session id becomes part of the key; without it, each session
// gets its own in-process store.
func locationStores(redisClient *redis.Client) handlers.StoreFactory {
	if redisClient != nil {
		return func(sessionID string) ports.LocationStore {
			return locations.NewRedisStore(redisClient, sessionID)
		}
	}

	var mu sync.Mutex
	perSession := make(map[string]*locations.MemoryStore)
	return func(sessionID string) ports.LocationStore {
		mu.Lock()
		defer mu.Unlock()
		store, ok := perSession[sessionID]
		if !ok {
			store = locations.NewMemoryStore()
			perSession[sessionID] = store
		}
		return store
	}
}

// demoAddresses seeds the mock provider for local development runs.
func demoAddresses() map[string]domain.Coordinates {
	return map[string]domain.Coordinates{
		"1901 w madison st, phoenix, az 85009": {Latitude: 33.4462, Longitude: -112.0975},
		"100 main st, phoenix, az 85003":       {Latitude: 33.4484, Longitude: -112.0740},
		"2502 e camelback rd, phoenix, az":     {Latitude: 33.5092, Longitude: -112.0291},
	}
}
