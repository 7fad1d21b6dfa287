package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/scoutalina/scout-backend-go/internal/database"
	"github.com/scoutalina/scout-backend-go/internal/models"
)

// PointKey is the idempotency key of a stored route point: timestamp plus
// the 1e-5 degree rounded coordinate. Scoped per user in every query.
type PointKey struct {
	TsMs  int64
	LatE5 int64
	LonE5 int64
}

// RouteRepository handles database operations for routes and their points
type RouteRepository struct {
	db *sql.DB
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(db *sql.DB) *RouteRepository {
	return &RouteRepository{db: db}
}

// GetByBatchID returns the user's route created from the given client batch
// id, or nil if no such route exists.
func (r *RouteRepository) GetByBatchID(userID, batchID string) (*models.Route, error) {
	query := `SELECT id, user_id, COALESCE(batch_id, ''), COALESCE(recorded_date, ''),
		total_distance_m, point_count, created_at
		FROM routes WHERE user_id = ? AND batch_id = ?`

	var rt models.Route
	err := r.db.QueryRow(query, userID, batchID).Scan(
		&rt.ID, &rt.UserID, &rt.BatchID, &rt.RecordedDate,
		&rt.TotalDistanceM, &rt.PointCount, &rt.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get route by batch id: %w", err)
	}

	return &rt, nil
}

// ExistingPointKeys returns which of the given keys are already stored for
// the user, across all of their routes.
func (r *RouteRepository) ExistingPointKeys(userID string, keys []PointKey) (map[PointKey]bool, error) {
	existing := make(map[PointKey]bool)

	// Row-value IN lists are bounded to keep statements small.
	const chunkSize = 200
	for start := 0; start < len(keys); start += chunkSize {
		end := start + chunkSize
		if end > len(keys) {
			end = len(keys)
		}
		chunk := keys[start:end]

		placeholders := make([]string, 0, len(chunk))
		args := make([]interface{}, 0, len(chunk)*3+1)
		args = append(args, userID)
		for _, k := range chunk {
			placeholders = append(placeholders, "(?, ?, ?)")
			args = append(args, k.TsMs, k.LatE5, k.LonE5)
		}

		query := fmt.Sprintf(
			`SELECT ts_ms, lat_e5, lon_e5 FROM route_points
			 WHERE user_id = ? AND (ts_ms, lat_e5, lon_e5) IN (VALUES %s)`,
			strings.Join(placeholders, ", "),
		)

		rows, err := r.db.Query(query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to query existing point keys: %w", err)
		}
		for rows.Next() {
			var k PointKey
			if err := rows.Scan(&k.TsMs, &k.LatE5, &k.LonE5); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan point key: %w", err)
			}
			existing[k] = true
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to iterate point keys: %w", err)
		}
		rows.Close()
	}

	return existing, nil
}

// Create persists a route together with all of its points in one transaction,
// so a partial route (points without geometry, or vice versa) is never
// observable. The route's ID is filled in on success.
func (r *RouteRepository) Create(route *models.Route) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		var batchID interface{}
		if route.BatchID != "" {
			batchID = route.BatchID
		}
		var recordedDate interface{}
		if route.RecordedDate != "" {
			recordedDate = route.RecordedDate
		}

		res, err := tx.Exec(
			`INSERT INTO routes (user_id, batch_id, recorded_date, total_distance_m, point_count)
			 VALUES (?, ?, ?, ?, ?)`,
			route.UserID, batchID, recordedDate, route.TotalDistanceM, len(route.Points),
		)
		if err != nil {
			return fmt.Errorf("failed to insert route: %w", err)
		}

		routeID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get route id: %w", err)
		}

		stmt, err := tx.Prepare(
			`INSERT INTO route_points
			 (route_id, user_id, ts_ms, latitude, longitude, lat_e5, lon_e5, accuracy_m, altitude_m, seq)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		)
		if err != nil {
			return fmt.Errorf("failed to prepare point insert: %w", err)
		}
		defer stmt.Close()

		for i := range route.Points {
			p := &route.Points[i]
			if _, err := stmt.Exec(
				routeID, route.UserID, p.Timestamp, p.Latitude, p.Longitude,
				p.LatE5, p.LonE5, p.AccuracyM, p.AltitudeM, p.Seq,
			); err != nil {
				return fmt.Errorf("failed to insert route point: %w", err)
			}
			p.RouteID = routeID
		}

		route.ID = routeID
		route.PointCount = len(route.Points)
		return nil
	})
}

// GetOwned returns the route if it exists and belongs to the user, nil
// otherwise.
func (r *RouteRepository) GetOwned(userID string, routeID int64) (*models.Route, error) {
	query := `SELECT id, user_id, COALESCE(batch_id, ''), COALESCE(recorded_date, ''),
		total_distance_m, point_count, created_at
		FROM routes WHERE id = ? AND user_id = ?`

	var rt models.Route
	err := r.db.QueryRow(query, routeID, userID).Scan(
		&rt.ID, &rt.UserID, &rt.BatchID, &rt.RecordedDate,
		&rt.TotalDistanceM, &rt.PointCount, &rt.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get route: %w", err)
	}

	return &rt, nil
}

// GetPoints returns a route's points in sequence order.
func (r *RouteRepository) GetPoints(routeID int64) ([]models.RoutePoint, error) {
	query := `SELECT id, route_id, user_id, ts_ms, latitude, longitude, lat_e5, lon_e5,
		accuracy_m, altitude_m, seq
		FROM route_points WHERE route_id = ? ORDER BY seq`

	rows, err := r.db.Query(query, routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query route points: %w", err)
	}
	defer rows.Close()

	var points []models.RoutePoint
	for rows.Next() {
		var p models.RoutePoint
		if err := rows.Scan(
			&p.ID, &p.RouteID, &p.UserID, &p.Timestamp, &p.Latitude, &p.Longitude,
			&p.LatE5, &p.LonE5, &p.AccuracyM, &p.AltitudeM, &p.Seq,
		); err != nil {
			return nil, fmt.Errorf("failed to scan route point: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate route points: %w", err)
	}

	return points, nil
}

// ListByUser returns the user's routes, newest first. With a date filter only
// that recorded date is returned; otherwise the last 30 days.
func (r *RouteRepository) ListByUser(userID string, filter models.RouteListFilter) ([]models.Route, error) {
	query := `SELECT id, user_id, COALESCE(batch_id, ''), COALESCE(recorded_date, ''),
		total_distance_m, point_count, created_at
		FROM routes WHERE user_id = ?`
	args := []interface{}{userID}

	if filter.Date != "" {
		query += " AND recorded_date = ?"
		args = append(args, filter.Date)
	} else {
		query += " AND created_at >= datetime('now', '-30 days')"
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	var routes []models.Route
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(
			&rt.ID, &rt.UserID, &rt.BatchID, &rt.RecordedDate,
			&rt.TotalDistanceM, &rt.PointCount, &rt.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan route: %w", err)
		}
		routes = append(routes, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate routes: %w", err)
	}

	return routes, nil
}

// MatchCount returns the number of stored matches for a route.
func (r *RouteRepository) MatchCount(routeID int64) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM route_properties WHERE route_id = ?", routeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count route matches: %w", err)
	}
	return count, nil
}
