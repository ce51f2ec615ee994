package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"geo-pricing-service/internal/domain"
	"geo-pricing-service/internal/ports"
)

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Sources      []int       `json:"sources"`
	Metrics      []string    `json:"metrics"`
	Units        string      `json:"units"`
}

type matrixResponse struct {
	// Null entries mark pairs the provider could not route.
	Distances [][]*float64 `json:"distances"`
	Durations [][]*float64 `json:"durations"`
}

// DistanceMatrix fetches one origin->many row from the provider's matrix
// endpoint in driving mode with imperial units. Unroutable pairs come back
// as elements with OK=false rather than failing the batch.
func (p *HTTPMapProvider) DistanceMatrix(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) ([]ports.MatrixElement, error) {
	if len(destinations) == 0 {
		return []ports.MatrixElement{}, nil
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", p.baseURL, p.profile)

	// Matrix locations use GeoJSON order: [lon, lat].
	locations := make([][]float64, 0, 1+len(destinations))
	locations = append(locations, []float64{origin.Longitude, origin.Latitude})
	for _, d := range destinations {
		locations = append(locations, []float64{d.Longitude, d.Latitude})
	}

	destIdx := make([]int, 0, len(destinations))
	for i := 1; i < len(locations); i++ {
		destIdx = append(destIdx, i)
	}

	payload, err := json.Marshal(matrixRequest{
		Locations:    locations,
		Destinations: destIdx,
		Sources:      []int{0},
		Metrics:      []string{"distance", "duration"},
		Units:        "mi",
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, func() (*http.Request, error) {
		return p.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("matrix request: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != 1 || len(mr.Durations) != 1 {
		return nil, fmt.Errorf(
			"expected 1 source row; got distances=%d durations=%d",
			len(mr.Distances), len(mr.Durations),
		)
	}

	rowDistances := mr.Distances[0]
	rowDurations := mr.Durations[0]

	if len(rowDistances) != len(destinations) || len(rowDurations) != len(destinations) {
		return nil, fmt.Errorf(
			"row lengths do not match destinations: distances=%d durations=%d destinations=%d",
			len(rowDistances), len(rowDurations), len(destinations),
		)
	}

	out := make([]ports.MatrixElement, len(destinations))
	for i := range destinations {
		milesPtr := rowDistances[i]
		secondsPtr := rowDurations[i]

		if milesPtr == nil || secondsPtr == nil {
			out[i] = ports.MatrixElement{OK: false}
			continue
		}

		out[i] = ports.MatrixElement{
			DistanceMiles:   *milesPtr,
			DurationMinutes: *secondsPtr / 60,
			OK:              true,
		}
	}

	return out, nil
}
