package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"geo-pricing-service/internal/domain"
)

func TestNewHTTPMapProviderRejectsEmptyConfig(t *testing.T) {
	if _, err := NewHTTPMapProvider("", "https://maps.example.com"); err == nil {
		t.Fatal("empty api key accepted")
	}
	if _, err := NewHTTPMapProvider("key", "  "); err == nil {
		t.Fatal("empty base url accepted")
	}
}

func TestGeocodeParsesFirstFeature(t *testing.T) {
	var gotAuth, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geocode/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotText = r.URL.Query().Get("text")

		// GeoJSON coordinate order is [lon, lat].
		w.Write([]byte(`{"features":[
			{"geometry":{"coordinates":[-112.0740,33.4484]}},
			{"geometry":{"coordinates":[0,0]}}
		]}`))
	}))
	defer srv.Close()

	p, err := NewHTTPMapProvider("test-key", srv.URL)
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	coords, err := p.Geocode(context.Background(), "123 main st")
	if err != nil {
		t.Fatalf("geocode: %v", err)
	}

	if gotAuth != "test-key" {
		t.Fatalf("authorization = %q", gotAuth)
	}
	if gotText != "123 main st" {
		t.Fatalf("text = %q", gotText)
	}
	want := domain.Coordinates{Latitude: 33.4484, Longitude: -112.0740}
	if coords != want {
		t.Fatalf("coords = %+v, want %+v", coords, want)
	}
}

func TestGeocodeZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	}))
	defer srv.Close()

	p, _ := NewHTTPMapProvider("test-key", srv.URL)
	if _, err := p.Geocode(context.Background(), "nowhere"); err == nil {
		t.Fatal("zero results did not error")
	}
}

func TestGeocodeRetriesTransientErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"features":[{"geometry":{"coordinates":[-112.0740,33.4484]}}]}`))
	}))
	defer srv.Close()

	p, _ := NewHTTPMapProvider("test-key", srv.URL)
	if _, err := p.Geocode(context.Background(), "123 main st"); err != nil {
		t.Fatalf("geocode after retries: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("attempts = %d, want 3", attempts)
	}
}

func TestGeocodeDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p, _ := NewHTTPMapProvider("bad-key", srv.URL)
	if _, err := p.Geocode(context.Background(), "123 main st"); err == nil {
		t.Fatal("401 did not error")
	}
	if attempts != 1 {
		t.Fatalf("attempts = %d, want 1", attempts)
	}
}

func TestDistanceMatrix(t *testing.T) {
	var gotReq matrixRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v2/matrix/") {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}

		// Durations are seconds; the second pair is unroutable.
		w.Write([]byte(`{
			"distances": [[4.2, null]],
			"durations": [[600, null]]
		}`))
	}))
	defer srv.Close()

	p, _ := NewHTTPMapProvider("test-key", srv.URL)
	origin := domain.Coordinates{Latitude: 33.4484, Longitude: -112.0740}
	dests := []domain.Coordinates{
		{Latitude: 33.4255, Longitude: -111.9400},
		{Latitude: 33.4942, Longitude: -111.9261},
	}

	elements, err := p.DistanceMatrix(context.Background(), origin, dests)
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}

	if gotReq.Units != "mi" {
		t.Fatalf("units = %q, want mi", gotReq.Units)
	}
	if len(gotReq.Locations) != 3 {
		t.Fatalf("locations = %d, want 3", len(gotReq.Locations))
	}
	// Request locations use GeoJSON order.
	if gotReq.Locations[0][0] != origin.Longitude || gotReq.Locations[0][1] != origin.Latitude {
		t.Fatalf("origin location = %v", gotReq.Locations[0])
	}

	if len(elements) != 2 {
		t.Fatalf("elements = %d, want 2", len(elements))
	}
	if !elements[0].OK || elements[0].DistanceMiles != 4.2 || elements[0].DurationMinutes != 10 {
		t.Fatalf("element 0 = %+v", elements[0])
	}
	if elements[1].OK {
		t.Fatalf("unroutable element reported OK: %+v", elements[1])
	}
}

func TestDistanceMatrixEmptyDestinations(t *testing.T) {
	p, _ := NewHTTPMapProvider("test-key", "https://maps.example.com")
	elements, err := p.DistanceMatrix(context.Background(), domain.Coordinates{}, nil)
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	if len(elements) != 0 {
		t.Fatalf("elements = %d, want 0", len(elements))
	}
}

func TestDistanceMatrixRowMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"distances": [[1.0]], "durations": [[60, 120]]}`))
	}))
	defer srv.Close()

	p, _ := NewHTTPMapProvider("test-key", srv.URL)
	dests := []domain.Coordinates{
		{Latitude: 1, Longitude: 1},
		{Latitude: 2, Longitude: 2},
	}
	if _, err := p.DistanceMatrix(context.Background(), domain.Coordinates{}, dests); err == nil {
		t.Fatal("row mismatch did not error")
	}
}
