package dto

type StoreCandidateRequest struct {
	ID        string  `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type NearbyStoresRequest struct {
	Latitude         float64                 `json:"latitude"`
	Longitude        float64                 `json:"longitude"`
	MaxDistanceMiles float64                 `json:"max_distance_miles"`
	Stores           []StoreCandidateRequest `json:"stores"`
}

type NearbyStoreResponse struct {
	ID            string  `json:"id"`
	DistanceMiles float64 `json:"distance_miles"`
}

type NearbyStoresResponse struct {
	Stores []NearbyStoreResponse `json:"stores"`
}
