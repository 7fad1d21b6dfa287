package spatial

import (
	"math"
)

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64
	Lon float64
}

// metersPerDegreeLat is the approximate length of one degree of latitude.
const metersPerDegreeLat = 111320.0

// PathLength calculates the total length of a path (sequence of points) in meters.
// Paths with fewer than two points have length 0.
func PathLength(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}

	var totalDist float64
	for i := 1; i < len(points); i++ {
		dist := Distance(points[i-1].Lat, points[i-1].Lon, points[i].Lat, points[i].Lon)
		totalDist += dist
	}

	return totalDist
}

// PointToSegmentDistance calculates the minimum distance in meters from a
// point to the line segment a-b. A degenerate segment (a == b) reduces to the
// point-to-point distance.
//
// The projection parameter is computed in a local planar frame centered on a,
// which is accurate for the segment lengths a GPS trace produces; the final
// distance to the closest point is great-circle.
func PointToSegmentDistance(p, a, b Point) float64 {
	if sameCoordinate(a.Lat, a.Lon, b.Lat, b.Lon) {
		return Distance(p.Lat, p.Lon, a.Lat, a.Lon)
	}

	latRad := a.Lat * math.Pi / 180
	mPerDegLon := metersPerDegreeLat * math.Cos(latRad)

	bx := (b.Lon - a.Lon) * mPerDegLon
	by := (b.Lat - a.Lat) * metersPerDegreeLat
	px := (p.Lon - a.Lon) * mPerDegLon
	py := (p.Lat - a.Lat) * metersPerDegreeLat

	t := (px*bx + py*by) / (bx*bx + by*by)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closestLat := a.Lat + t*(b.Lat-a.Lat)
	closestLon := a.Lon + t*(b.Lon-a.Lon)
	return Distance(p.Lat, p.Lon, closestLat, closestLon)
}

// BoundingBox calculates the bounding box of a set of points
// Returns (minLat, minLon, maxLat, maxLon)
func BoundingBox(points []Point) (float64, float64, float64, float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLon, maxLon := points[0].Lon, points[0].Lon

	for _, p := range points[1:] {
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
	}

	return minLat, minLon, maxLat, maxLon
}
