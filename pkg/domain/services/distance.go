package services

import (
	"math"

	"github.com/shiproute/routing/pkg/domain/entities"
)

// earthRadiusKm is the mean Earth radius used for great-circle distance
const earthRadiusKm = 6371.0

// DistanceFunc maps an origin/destination pair to a non-negative travel
// cost in kilometers. Implementations must be deterministic pure
// functions: the same pair always yields the same value, so routing
// decisions are reproducible. Road-distance or API-backed estimators
// can substitute for the default as long as they pin their output.
type DistanceFunc func(origin, destination entities.Coordinate) float64

// Haversine computes the great-circle distance between two coordinates
// in kilometers. This is the default distance estimator.
func Haversine(origin, destination entities.Coordinate) float64 {
	dLat := radians(destination.Latitude - origin.Latitude)
	dLon := radians(destination.Longitude - origin.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(origin.Latitude))*math.Cos(radians(destination.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
