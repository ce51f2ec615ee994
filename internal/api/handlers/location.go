package handlers

import (
	"encoding/json"
	"net/http"

	"geo-pricing-service/internal/api/dto"
	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/ports"

	"github.com/rs/zerolog/hlog"
)

// SessionHeader carries the caller's session identity; every location
// operation is scoped to it.
const SessionHeader = "X-Session-ID"

// StoreFactory yields the location store bound to one session.
type StoreFactory func(sessionID string) ports.LocationStore

// Location manages the per-session saved user location. PUT saves, GET
// reads (404 when absent or stale), DELETE clears.
type Location struct {
	stores StoreFactory
}

func NewLocation(stores StoreFactory) *Location {
	return &Location{stores: stores}
}

func (h *Location) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		writeError(w, r, http.StatusBadRequest, SessionHeader+" header is required")
		return
	}

	store := h.stores(sessionID)

	switch r.Method {
	case http.MethodPut:
		h.save(w, r, store)
	case http.MethodGet:
		h.load(w, r, store)
	case http.MethodDelete:
		h.clear(w, r, store)
	default:
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Location) save(w http.ResponseWriter, r *http.Request, store ports.LocationStore) {
	var req dto.SaveLocationRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	coords, err := domain.NewCoordinates(req.Latitude, req.Longitude)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.Save(r.Context(), coords, req.Address); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("location save failed")
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Location) load(w http.ResponseWriter, r *http.Request, store ports.LocationStore) {
	rec, found, err := store.Load(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("location load failed")
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	if !found {
		writeError(w, r, http.StatusNotFound, "no saved location")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LocationResponse{
		Latitude:   rec.Coordinates.Latitude,
		Longitude:  rec.Coordinates.Longitude,
		Address:    rec.Address,
		ResolvedAt: rec.ResolvedAt,
	})
}

func (h *Location) clear(w http.ResponseWriter, r *http.Request, store ports.LocationStore) {
	if err := store.Clear(r.Context()); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("location clear failed")
		writeError(w, r, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
