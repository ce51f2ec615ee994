package dto

import "geo-pricing-service/internal/domain"

// AddressFields is the structured form of a postal address. Callers that
// hold discrete fields send these instead of a pre-joined line.
type AddressFields struct {
	Street     string `json:"street"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country,omitempty"`
}

// Line joins the populated fields into a single geocodable address line.
func (f *AddressFields) Line() string {
	return domain.FormatAddress(f.Street, f.Street2, f.City, f.State, f.PostalCode, f.Country)
}

// QuoteRequest carries either a flat address line or structured fields for
// each side; the flat line wins when both are present.
type QuoteRequest struct {
	OriginAddress      string               `json:"origin_address,omitempty"`
	Origin             *AddressFields       `json:"origin,omitempty"`
	DestinationAddress string               `json:"destination_address,omitempty"`
	Destination        *AddressFields       `json:"destination,omitempty"`
	Policy             domain.PricingPolicy `json:"policy"`
}

// OriginLine resolves the origin to one address line.
func (r *QuoteRequest) OriginLine() string {
	if r.OriginAddress == "" && r.Origin != nil {
		return r.Origin.Line()
	}
	return r.OriginAddress
}

// DestinationLine resolves the destination to one address line.
func (r *QuoteRequest) DestinationLine() string {
	if r.DestinationAddress == "" && r.Destination != nil {
		return r.Destination.Line()
	}
	return r.DestinationAddress
}

type QuoteResponse struct {
	Fee             float64 `json:"fee"`
	DistanceMiles   float64 `json:"distance_miles"`
	DurationMinutes float64 `json:"duration_minutes"`
}
