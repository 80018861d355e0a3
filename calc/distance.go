// calc/distance.go
package calc

import (
	"math"

	"github.com/gewnthar/flightops/models"
)

// EarthRadiusKM is the mean Earth radius used for great-circle distances.
const EarthRadiusKM = 6371.0

// GreatCircleKM returns the distance between two points using the spherical
// law of cosines. The cosine term is clamped so identical points give exactly 0.
func GreatCircleKM(a, b models.Coordinate) float64 {
	if a == b {
		return 0
	}
	lat1 := degreesToRadians(a.Latitude)
	lat2 := degreesToRadians(b.Latitude)
	dLon := degreesToRadians(b.Longitude - a.Longitude)

	c := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(dLon)
	c = math.Max(-1, math.Min(1, c))
	return EarthRadiusKM * math.Acos(c)
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}
