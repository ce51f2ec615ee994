package api

import (
	"net/http"

	"geo-pricing-service/internal/api/handlers"
	"geo-pricing-service/internal/services"

	"github.com/rs/zerolog"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware
// of concrete adapters).
func NewRouter(engine *services.Engine, stores handlers.StoreFactory, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handlers.Health)
	mux.Handle("POST /quote", handlers.NewQuote(engine))
	mux.Handle("POST /stores/nearby", handlers.NewNearbyStores(engine))
	mux.Handle("/location", handlers.NewLocation(stores))

	return requestLogging(log, mux)
}
