package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"geo-pricing-service/internal/api/dto"
	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/services"

	"github.com/rs/zerolog/hlog"
)

// NearbyStores ranks the candidate stores in the request by travel
// distance from the given user position.
type NearbyStores struct {
	engine *services.Engine
}

func NewNearbyStores(engine *services.Engine) *NearbyStores {
	return &NearbyStores{engine: engine}
}

func (h *NearbyStores) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.NearbyStoresRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.MaxDistanceMiles < 0 {
		writeError(w, r, http.StatusBadRequest, "max_distance_miles must not be negative")
		return
	}

	user, err := domain.NewCoordinates(req.Latitude, req.Longitude)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	candidates := make([]services.StoreCandidate, 0, len(req.Stores))
	for _, s := range req.Stores {
		candidates = append(candidates, services.StoreCandidate{
			ID:          s.ID,
			Coordinates: domain.Coordinates{Latitude: s.Latitude, Longitude: s.Longitude},
		})
	}

	nearby, err := h.engine.NearbyStores(r.Context(), user, candidates, req.MaxDistanceMiles)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("nearby stores failed")
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	resp := dto.NearbyStoresResponse{Stores: make([]dto.NearbyStoreResponse, 0, len(nearby))}
	for _, s := range nearby {
		resp.Stores = append(resp.Stores, dto.NearbyStoreResponse{ID: s.ID, DistanceMiles: s.DistanceMiles})
	}

	writeJSON(w, r, http.StatusOK, resp)
}
