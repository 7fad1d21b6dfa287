package repository

import (
	"database/sql"
	"fmt"
)

// StatsRepository aggregates over persisted routes and match projections.
// None of these queries has its own source of truth; everything derives from
// the routes and route_properties tables.
type StatsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// RouteTotals returns the user's route count and summed distance, optionally
// restricted to routes created in the last `days` days (0 = all time).
func (r *StatsRepository) RouteTotals(userID string, days int) (int, float64, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(total_distance_m), 0) FROM routes WHERE user_id = ?`
	args := []interface{}{userID}
	if days > 0 {
		query += " AND created_at >= datetime('now', ?)"
		args = append(args, fmt.Sprintf("-%d days", days))
	}

	var count int
	var distance float64
	if err := r.db.QueryRow(query, args...).Scan(&count, &distance); err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate routes: %w", err)
	}
	return count, distance, nil
}

// DistinctProperties returns how many distinct properties the user's routes
// have matched, optionally restricted to the last `days` days.
func (r *StatsRepository) DistinctProperties(userID string, days int) (int, error) {
	query := `SELECT COUNT(DISTINCT rp.property_id)
		FROM route_properties rp
		JOIN routes rt ON rt.id = rp.route_id
		WHERE rt.user_id = ?`
	args := []interface{}{userID}
	if days > 0 {
		query += " AND rt.created_at >= datetime('now', ?)"
		args = append(args, fmt.Sprintf("-%d days", days))
	}

	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matched properties: %w", err)
	}
	return count, nil
}

// RarityCounts returns distinct matched properties per rarity tier.
func (r *StatsRepository) RarityCounts(userID string) (map[string]int, error) {
	query := `SELECT rarity, COUNT(*) FROM (
			SELECT rp.property_id, MIN(rp.rarity) AS rarity
			FROM route_properties rp
			JOIN routes rt ON rt.id = rp.route_id
			WHERE rt.user_id = ?
			GROUP BY rp.property_id
		) GROUP BY rarity`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rarity counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tier string
		var n int
		if err := rows.Scan(&tier, &n); err != nil {
			return nil, fmt.Errorf("failed to scan rarity count: %w", err)
		}
		counts[tier] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rarity counts: %w", err)
	}

	return counts, nil
}

// DiscoveredPrices returns the prices of the distinct properties the user's
// routes have matched, for quartile computation.
func (r *StatsRepository) DiscoveredPrices(userID string) ([]float64, error) {
	query := `SELECT DISTINCT p.id, p.price
		FROM route_properties rp
		JOIN routes rt ON rt.id = rp.route_id
		JOIN properties p ON p.id = rp.property_id
		WHERE rt.user_id = ?`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query discovered prices: %w", err)
	}
	defer rows.Close()

	var prices []float64
	for rows.Next() {
		var id int64
		var price float64
		if err := rows.Scan(&id, &price); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		prices = append(prices, price)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prices: %w", err)
	}

	return prices, nil
}

// Ping verifies database connectivity for the health endpoint.
func (r *StatsRepository) Ping() error {
	var one int
	if err := r.db.QueryRow("SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("database unavailable: %w", err)
	}
	return nil
}
