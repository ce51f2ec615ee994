package dto

import "time"

type SaveLocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

type LocationResponse struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Address    string    `json:"address,omitempty"`
	ResolvedAt time.Time `json:"resolved_at"`
}
