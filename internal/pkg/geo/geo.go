package geo

import "math"

// earthRadiusMeters is the WGS84 mean Earth radius.
const earthRadiusMeters = 6371000

// Result is the outcome of a geofence check against a checkpoint circle.
type Result struct {
	DistanceMeters  float64
	Inside          bool
	RemainingMeters float64
}

// HaversineDistance returns the great-circle distance between two
// coordinates in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Evaluate checks whether an observed coordinate lies within radiusMeters of
// the fence center. The boundary is inclusive. RemainingMeters is how much
// closer the observer must get, zero when already inside.
func Evaluate(centerLat, centerLon, radiusMeters, observedLat, observedLon float64) Result {
	d := HaversineDistance(centerLat, centerLon, observedLat, observedLon)

	if d <= radiusMeters {
		return Result{DistanceMeters: d, Inside: true, RemainingMeters: 0}
	}

	return Result{DistanceMeters: d, Inside: false, RemainingMeters: d - radiusMeters}
}

// Round2 rounds to 2 decimal places. Used for reporting only; comparisons
// against the radius always use the raw distance.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
