package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the Earth's mean radius in meters.
const EarthRadiusMeters = 6371000.0

// coordEpsilon is the tolerance below which two coordinates are treated as
// the same point, so Distance is exactly zero for equal inputs.
const coordEpsilon = 1e-9

// Distance calculates the great-circle distance between two points in meters
// using the S2 spherical model. Symmetric; zero iff the points coincide
// (within coordEpsilon per axis).
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	if sameCoordinate(lat1, lon1, lat2, lon2) {
		return 0
	}
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Midpoint calculates the midpoint between two points.
func Midpoint(lat1, lon1, lat2, lon2 float64) (float64, float64) {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)

	// Use S2 interpolation
	mid := s2.Interpolate(0.5, s2.PointFromLatLng(p1), s2.PointFromLatLng(p2))
	midLatLng := s2.LatLngFromPoint(mid)

	return midLatLng.Lat.Degrees(), midLatLng.Lng.Degrees()
}

func sameCoordinate(lat1, lon1, lat2, lon2 float64) bool {
	return math.Abs(lat1-lat2) < coordEpsilon && math.Abs(lon1-lon2) < coordEpsilon
}
