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

// Quote prices a delivery between two addresses under the policy supplied
// in the request body.
type Quote struct {
	engine *services.Engine
}

func NewQuote(engine *services.Engine) *Quote {
	return &Quote{engine: engine}
}

func (h *Quote) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req dto.QuoteRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := req.Policy.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	quote, err := h.engine.QuoteForAddresses(r.Context(), req.OriginLine(), req.DestinationLine(), req.Policy)
	if err != nil {
		writeQuoteError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.QuoteResponse{
		Fee:             services.RoundMoney(quote.Fee),
		DistanceMiles:   quote.DistanceMiles,
		DurationMinutes: quote.DurationMinutes,
	})
}

func writeQuoteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, r, http.StatusTooManyRequests, "geocoding quota exhausted, retry shortly")
	case errors.Is(err, domain.ErrProvider):
		// Surface an actionable message: the address most likely needs
		// to be re-entered by the user.
		writeError(w, r, http.StatusBadGateway, "we couldn't find that address")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("quote failed")
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}
