// Package geo evaluates the spatial predicates used to filter organizations by
// the coordinate of their building.
package geo

import "math"

// EarthRadiusM - средний радиус Земли в метрах
const EarthRadiusM = 6_371_000.0

// MaxRadiusM is the largest radius a Radius filter accepts.
const MaxRadiusM = 100_000.0

// RadiusTolerance is the relative slack added to a radius before comparing.
// SQL engines evaluate sin/cos with their own libm, so a point computed to lie
// exactly on the boundary may land a few ulps outside it.
const RadiusTolerance = 1e-9

// DegToRad is the literal used by both the Go and the SQL haversine.
const DegToRad = 0.017453292519943295

const degToRad = DegToRad

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// HaversineDistance returns the great-circle distance in metres between two
// points on a sphere of the given radius.
func HaversineDistance(lat1, lon1, lat2, lon2, earthRadiusM float64) float64 {
	lat1Rad := lat1 * degToRad
	lat2Rad := lat2 * degToRad
	dLat := lat2Rad - lat1Rad
	dLon := (lon2 - lon1) * degToRad

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(lat1Rad)*math.Cos(lat2Rad)*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius checks 0 < radius <= MaxRadiusM.
func ValidateRadius(radiusM float64) bool {
	return radiusM > 0 && radiusM <= MaxRadiusM
}
