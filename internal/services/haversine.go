package services

import "math"

const (
	earthRadiusMiles = 3959.0

	// Minutes of driving per mile, ~24 mph average effective speed.
	fallbackMinutesPerMile = 2.5
)

// Haversine returns the great-circle distance in miles between two points,
// rounded to one decimal place. Pure and network-free; used as the analytic
// fallback when the distance provider is unavailable.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	miles := earthRadiusMiles * c
	return math.Round(miles*10) / 10
}

// EstimateDuration converts a distance into an estimated driving duration
// in minutes using a fixed average-speed heuristic.
func EstimateDuration(distanceMiles float64) float64 {
	return distanceMiles * fallbackMinutesPerMile
}
