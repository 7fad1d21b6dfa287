package repository

import (
	"database/sql"
	"fmt"

	"github.com/scoutalina/scout-backend-go/internal/database"
	"github.com/scoutalina/scout-backend-go/internal/models"
)

// MatchRepository persists the route-property match projection.
type MatchRepository struct {
	db *sql.DB
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *sql.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// ReplaceForRoute rewrites the whole match set for a route in one
// transaction. Rematching never patches rows incrementally, so stale and
// fresh matches cannot mix.
func (r *MatchRepository) ReplaceForRoute(routeID int64, matches []models.RouteMatch) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM route_properties WHERE route_id = ?", routeID); err != nil {
			return fmt.Errorf("failed to clear route matches: %w", err)
		}

		stmt, err := tx.Prepare(
			`INSERT INTO route_properties (route_id, property_id, distance_m, rarity)
			 VALUES (?, ?, ?, ?)`,
		)
		if err != nil {
			return fmt.Errorf("failed to prepare match insert: %w", err)
		}
		defer stmt.Close()

		for _, m := range matches {
			if _, err := stmt.Exec(routeID, m.PropertyID, m.DistanceM, m.Rarity); err != nil {
				return fmt.Errorf("failed to insert match: %w", err)
			}
		}

		return nil
	})
}

// GetForRoute returns the stored match set joined with property attributes,
// ordered by ascending distance (property id as tie-break for stable order).
func (r *MatchRepository) GetForRoute(routeID int64) ([]models.RouteMatch, error) {
	query := fmt.Sprintf(`SELECT rp.route_id, rp.property_id, rp.distance_m, rp.rarity, rp.discovered_at, %s
		FROM route_properties rp
		JOIN properties p ON p.id = rp.property_id
		WHERE rp.route_id = ?
		ORDER BY rp.distance_m ASC, rp.property_id ASC`, prefixedPropertyColumns("p"))

	rows, err := r.db.Query(query, routeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query route matches: %w", err)
	}
	defer rows.Close()

	var matches []models.RouteMatch
	for rows.Next() {
		var m models.RouteMatch
		var p models.Property
		if err := rows.Scan(
			&m.RouteID, &m.PropertyID, &m.DistanceM, &m.Rarity, &m.DiscoveredAt,
			&p.ID, &p.ExternalID, &p.Address, &p.City, &p.State, &p.Zip,
			&p.Latitude, &p.Longitude, &p.Price, &p.Bedrooms, &p.Bathrooms,
			&p.Sqft, &p.LotSqft, &p.YearBuilt, &p.PropertyType, &p.PhotoURL,
			&p.Source, &p.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("failed to scan route match: %w", err)
		}
		m.Property = &p
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate route matches: %w", err)
	}

	return matches, nil
}

func prefixedPropertyColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, COALESCE(%[1]s.external_id, ''), %[1]s.address, %[1]s.city, %[1]s.state, %[1]s.zip,
	%[1]s.latitude, %[1]s.longitude, %[1]s.price, %[1]s.bedrooms, %[1]s.bathrooms, %[1]s.sqft, %[1]s.lot_sqft,
	%[1]s.year_built, %[1]s.property_type, %[1]s.photo_url, %[1]s.source, %[1]s.last_updated`, alias)
}
