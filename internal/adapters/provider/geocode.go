package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"geo-pricing-service/internal/domain"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			// GeoJSON order: [lon, lat].
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves one address via the provider's search endpoint and
// returns the first (best) match. Zero results are an error; the resolver
// decides whether that is surfaced or retried.
func (p *HTTPMapProvider) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	endpoint := p.baseURL + "/geocode/search"

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := p.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", address)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q", address)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", address)
	}

	return domain.NewCoordinates(coords[1], coords[0])
}
