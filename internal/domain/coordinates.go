package domain

import "fmt"

// Immutable geographic point (latitude, longitude) in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewCoordinates builds a validated coordinate pair.
// Out-of-range values are rejected, never clamped.
func NewCoordinates(lat, lon float64) (Coordinates, error) {
	c := Coordinates{Latitude: lat, Longitude: lon}
	if err := c.Validate(); err != nil {
		return Coordinates{}, err
	}
	return c, nil
}

// Validate checks latitude against [-90, 90] and longitude against [-180, 180].
func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidInput, c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidInput, c.Longitude)
	}
	return nil
}

// Key renders the point at fixed precision for use in cache keys.
// Six decimal places is below geocoding accuracy, so equal resolutions
// always produce equal keys.
func (c Coordinates) Key() string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}
