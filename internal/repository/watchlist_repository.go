package repository

import (
	"database/sql"
	"fmt"

	"github.com/scoutalina/scout-backend-go/internal/database"
	"github.com/scoutalina/scout-backend-go/internal/models"
)

// WatchlistRepository handles the per-user saved-property set.
type WatchlistRepository struct {
	db *sql.DB
}

// NewWatchlistRepository creates a new watchlist repository
func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Add saves the (user, property) pair. Re-adding an existing pair changes
// nothing except optionally refreshing the notes; it is never an error.
func (r *WatchlistRepository) Add(userID string, propertyID int64, notes string) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO watchlists (user_id, property_id, notes) VALUES (?, ?, ?)`,
			userID, propertyID, notes,
		); err != nil {
			return fmt.Errorf("failed to add watchlist entry: %w", err)
		}

		if notes != "" {
			if _, err := tx.Exec(
				`UPDATE watchlists SET notes = ? WHERE user_id = ? AND property_id = ?`,
				notes, userID, propertyID,
			); err != nil {
				return fmt.Errorf("failed to update watchlist notes: %w", err)
			}
		}

		return nil
	})
}

// Remove deletes the pair. Removing an absent pair is a no-op.
func (r *WatchlistRepository) Remove(userID string, propertyID int64) error {
	if _, err := r.db.Exec(
		"DELETE FROM watchlists WHERE user_id = ? AND property_id = ?",
		userID, propertyID,
	); err != nil {
		return fmt.Errorf("failed to remove watchlist entry: %w", err)
	}
	return nil
}

// PropertyIDs returns the set of property ids on the user's watchlist.
func (r *WatchlistRepository) PropertyIDs(userID string) (map[int64]bool, error) {
	rows, err := r.db.Query("SELECT property_id FROM watchlists WHERE user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist id: %w", err)
		}
		ids[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate watchlist ids: %w", err)
	}

	return ids, nil
}

// List returns the user's watchlist entries with their properties in
// insertion order (added_at, id), which is stable across repeated calls.
func (r *WatchlistRepository) List(userID string) ([]models.WatchlistEntry, error) {
	query := fmt.Sprintf(`SELECT w.id, w.user_id, w.property_id, w.added_at, w.notes, %s
		FROM watchlists w
		JOIN properties p ON p.id = w.property_id
		WHERE w.user_id = ?
		ORDER BY w.added_at ASC, w.id ASC`, prefixedPropertyColumns("p"))

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist: %w", err)
	}
	defer rows.Close()

	var entries []models.WatchlistEntry
	for rows.Next() {
		var e models.WatchlistEntry
		var p models.Property
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.PropertyID, &e.AddedAt, &e.Notes,
			&p.ID, &p.ExternalID, &p.Address, &p.City, &p.State, &p.Zip,
			&p.Latitude, &p.Longitude, &p.Price, &p.Bedrooms, &p.Bathrooms,
			&p.Sqft, &p.LotSqft, &p.YearBuilt, &p.PropertyType, &p.PhotoURL,
			&p.Source, &p.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist entry: %w", err)
		}
		e.Property = &p
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate watchlist: %w", err)
	}

	return entries, nil
}
