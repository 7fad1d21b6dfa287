package service

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scoutalina/scout-backend-go/internal/apperr"
	"github.com/scoutalina/scout-backend-go/internal/models"
	"github.com/scoutalina/scout-backend-go/internal/repository"
	"github.com/scoutalina/scout-backend-go/internal/spatial"
)

// RouteService builds persisted routes from raw point batches.
//
// An upload is idempotent two ways: a replayed client batch id returns the
// existing route untouched, and individual points already stored for the user
// (same timestamp and rounded coordinate) are skipped. The duplicate check
// and the atomic persist are serialized per user so two concurrent uploads of
// overlapping batches cannot both pass the check; the unique index on the
// point identity backs that up at the database level.
type RouteService struct {
	routes    *repository.RouteRepository
	userLocks sync.Map // user id -> *sync.Mutex
}

// NewRouteService creates a new route service
func NewRouteService(routes *repository.RouteRepository) *RouteService {
	return &RouteService{routes: routes}
}

// RoundE5 rounds a coordinate to 1e-5 degrees (about one meter), the
// granularity of the point idempotency key.
func RoundE5(deg float64) int64 {
	return int64(math.Round(deg * 1e5))
}

// Upload validates, deduplicates, orders and persists one point batch as a
// new route, returning the created (or replayed) route's id and distance.
func (s *RouteService) Upload(userID string, req models.RouteUploadRequest) (*models.RouteUploadResult, error) {
	if len(req.Points) == 0 {
		return nil, apperr.Validation("points must be a non-empty array")
	}
	if req.RecordedDate != "" {
		if _, err := time.Parse("2006-01-02", req.RecordedDate); err != nil {
			return nil, apperr.Validation("invalid recorded_date format, expected YYYY-MM-DD")
		}
	}
	for i, p := range req.Points {
		if p.Lat == nil || p.Lon == nil || p.Timestamp == nil {
			return nil, apperr.Validation("point %d requires lat, lon and timestamp", i)
		}
		if *p.Lat < -90 || *p.Lat > 90 || *p.Lon < -180 || *p.Lon > 180 {
			return nil, apperr.Validation("point %d has out-of-range coordinates", i)
		}
		// Epoch zero is a valid instant; only negative timestamps are rejected.
		if *p.Timestamp < 0 {
			return nil, apperr.Validation("point %d has a negative timestamp", i)
		}
	}

	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	// Batch replay: same client batch id means the route already exists.
	if req.BatchID != "" {
		existing, err := s.routes.GetByBatchID(userID, req.BatchID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return &models.RouteUploadResult{
				RouteID:           existing.ID,
				BatchID:           existing.BatchID,
				TotalDistanceM:    existing.TotalDistanceM,
				PointCount:        existing.PointCount,
				SkippedDuplicates: len(req.Points),
				Replayed:          true,
			}, nil
		}
	}

	keys := make([]repository.PointKey, len(req.Points))
	for i, p := range req.Points {
		keys[i] = repository.PointKey{
			TsMs:  *p.Timestamp,
			LatE5: RoundE5(*p.Lat),
			LonE5: RoundE5(*p.Lon),
		}
	}

	stored, err := s.routes.ExistingPointKeys(userID, keys)
	if err != nil {
		return nil, err
	}

	// Keep points not yet stored for this user, dropping repeats within the
	// batch itself as well.
	seen := make(map[repository.PointKey]bool)
	var points []models.RoutePoint
	for i, p := range req.Points {
		k := keys[i]
		if stored[k] || seen[k] {
			continue
		}
		seen[k] = true
		points = append(points, models.RoutePoint{
			UserID:    userID,
			Timestamp: *p.Timestamp,
			Latitude:  *p.Lat,
			Longitude: *p.Lon,
			LatE5:     k.LatE5,
			LonE5:     k.LonE5,
			AccuracyM: p.AccuracyM,
			AltitudeM: p.AltitudeM,
		})
	}
	skipped := len(req.Points) - len(points)

	if len(points) == 0 {
		return nil, apperr.Validation("no new points in batch")
	}

	// Stable sort keeps arrival order as the tie-break for identical
	// timestamps.
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp < points[j].Timestamp
	})
	for i := range points {
		points[i].Seq = i
	}

	// Every stored route carries a batch id: the client's when supplied,
	// a minted one otherwise, so uploads stay individually addressable.
	batchID := req.BatchID
	if batchID == "" {
		batchID = uuid.NewString()
	}

	route := &models.Route{
		UserID:         userID,
		BatchID:        batchID,
		RecordedDate:   req.RecordedDate,
		TotalDistanceM: spatial.PathLength(Geometry(points)),
		Points:         points,
	}
	if err := s.routes.Create(route); err != nil {
		return nil, fmt.Errorf("failed to persist route: %w", err)
	}

	return &models.RouteUploadResult{
		RouteID:           route.ID,
		BatchID:           route.BatchID,
		TotalDistanceM:    route.TotalDistanceM,
		PointCount:        len(points),
		SkippedDuplicates: skipped,
	}, nil
}

// Get returns one of the user's routes with its ordered points.
func (s *RouteService) Get(userID string, routeID int64) (*models.Route, error) {
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
	route.Points = points

	return route, nil
}

// List returns route summaries for the dashboard, including geometry and
// stored match counts.
func (s *RouteService) List(userID string, filter models.RouteListFilter) ([]models.RouteSummary, error) {
	routes, err := s.routes.ListByUser(userID, filter)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.RouteSummary, 0, len(routes))
	for i := range routes {
		rt := &routes[i]
		points, err := s.routes.GetPoints(rt.ID)
		if err != nil {
			return nil, err
		}
		rt.Points = points

		matchCount, err := s.routes.MatchCount(rt.ID)
		if err != nil {
			return nil, err
		}

		var bbox []float64
		if len(points) > 0 {
			minLat, minLon, maxLat, maxLon := spatial.BoundingBox(Geometry(points))
			bbox = []float64{minLon, minLat, maxLon, maxLat}
		}

		summaries = append(summaries, models.RouteSummary{
			ID:             rt.ID,
			RecordedDate:   rt.RecordedDate,
			TotalDistanceM: rt.TotalDistanceM,
			PointCount:     rt.PointCount,
			PropertyCount:  matchCount,
			CreatedAt:      rt.CreatedAt,
			GeoJSON:        rt.GeoJSON(),
			BBox:           bbox,
		})
	}

	return summaries, nil
}

// Geometry converts stored points into the coordinate sequence used by the
// geo math.
func Geometry(points []models.RoutePoint) []spatial.Point {
	geom := make([]spatial.Point, len(points))
	for i, p := range points {
		geom[i] = spatial.Point{Lat: p.Latitude, Lon: p.Longitude}
	}
	return geom
}

func (s *RouteService) lockUser(userID string) *sync.Mutex {
	v, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return v.(*sync.Mutex)
}
