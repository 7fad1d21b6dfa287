package service

import (
	"fmt"
	"sort"

	"github.com/scoutalina/scout-backend-go/internal/apperr"
	"github.com/scoutalina/scout-backend-go/internal/models"
	"github.com/scoutalina/scout-backend-go/internal/repository"
	"github.com/scoutalina/scout-backend-go/internal/spatial"
)

// MatchService finds the properties within the buffer distance of a route and
// maintains the persisted match projection.
type MatchService struct {
	routes     *repository.RouteRepository
	properties *repository.PropertyRepository
	matches    *repository.MatchRepository
	watchlist  *repository.WatchlistRepository
	index      *spatial.Grid
	bufferM    float64
	rarity     RarityThresholds
}

// NewMatchService creates a new match service
func NewMatchService(
	routes *repository.RouteRepository,
	properties *repository.PropertyRepository,
	matches *repository.MatchRepository,
	watchlist *repository.WatchlistRepository,
	index *spatial.Grid,
	bufferM float64,
	rarity RarityThresholds,
) *MatchService {
	return &MatchService{
		routes:     routes,
		properties: properties,
		matches:    matches,
		watchlist:  watchlist,
		index:      index,
		bufferM:    bufferM,
		rarity:     rarity,
	}
}

// Rematch recomputes the route's match set against the current index and
// replaces the stored projection wholesale. The sweep itself has no side
// effects, so a failed run can simply be retried.
func (s *MatchService) Rematch(userID string, routeID int64) (*models.MatchResult, error) {
	route, err := s.routes.GetOwned(userID, routeID)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, apperr.NotFound("route", routeID)
	}

	points, err := s.routes.GetPoints(routeID)
	if err != nil {
		return nil, err
	}

	best, err := SweepGeometry(s.index, Geometry(points), s.bufferM)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(best))
	for id := range best {
		ids = append(ids, id)
	}
	props, err := s.properties.GetByIDs(ids)
	if err != nil {
		return nil, err
	}

	matches := make([]models.RouteMatch, 0, len(best))
	for id, dist := range best {
		prop, ok := props[id]
		if !ok {
			// Indexed entry with no catalog row: removed between query and
			// lookup, skip it.
			continue
		}
		matches = append(matches, models.RouteMatch{
			RouteID:    routeID,
			PropertyID: id,
			DistanceM:  dist,
			Rarity:     RarityTier(prop.Price, s.rarity),
			Property:   prop,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].DistanceM != matches[j].DistanceM {
			return matches[i].DistanceM < matches[j].DistanceM
		}
		return matches[i].PropertyID < matches[j].PropertyID
	})

	if err := s.matches.ReplaceForRoute(routeID, matches); err != nil {
		return nil, fmt.Errorf("failed to store match set: %w", err)
	}

	return &models.MatchResult{RouteID: routeID, Count: len(matches), Matches: matches}, nil
}

// StoredMatches returns the persisted match set for a route, flagged with the
// caller's watchlist membership, ordered by ascending distance.
func (s *MatchService) StoredMatches(userID string, routeID int64) (*models.MatchResult, error) {
	route, err := s.routes.GetOwned(userID, routeID)
	if err != nil {
		return nil, err
	}
	if route == nil {
		return nil, apperr.NotFound("route", routeID)
	}

	matches, err := s.matches.GetForRoute(routeID)
	if err != nil {
		return nil, err
	}

	watched, err := s.watchlist.PropertyIDs(userID)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		matches[i].IsInWatchlist = watched[matches[i].PropertyID]
	}

	return &models.MatchResult{RouteID: routeID, Count: len(matches), Matches: matches}, nil
}

// SweepGeometry walks the route's consecutive segments, queries the index
// around each segment midpoint with the conservative radius
// buffer + segment length, filters candidates by exact point-to-segment
// distance, and keeps the minimum distance per property across segments.
// A single-point geometry degrades to a plain radius query around the point.
func SweepGeometry(index *spatial.Grid, geom []spatial.Point, bufferM float64) (map[int64]float64, error) {
	best := make(map[int64]float64)

	if len(geom) == 0 {
		return best, nil
	}

	if len(geom) == 1 {
		candidates, err := index.Query(geom[0].Lat, geom[0].Lon, bufferM)
		if err != nil {
			return nil, err
		}
		for _, c := range candidates {
			keepMin(best, c.ID, c.Meters)
		}
		return best, nil
	}

	for i := 1; i < len(geom); i++ {
		a, b := geom[i-1], geom[i]
		segLen := spatial.Distance(a.Lat, a.Lon, b.Lat, b.Lon)
		midLat, midLon := spatial.Midpoint(a.Lat, a.Lon, b.Lat, b.Lon)

		candidates, err := index.Query(midLat, midLon, bufferM+segLen)
		if err != nil {
			return nil, err
		}
		for _, c := range candidates {
			d := spatial.PointToSegmentDistance(spatial.Point{Lat: c.Lat, Lon: c.Lon}, a, b)
			if d <= bufferM {
				keepMin(best, c.ID, d)
			}
		}
	}

	return best, nil
}

func keepMin(best map[int64]float64, id int64, d float64) {
	if prev, ok := best[id]; !ok || d < prev {
		best[id] = d
	}
}
