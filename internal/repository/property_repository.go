package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/scoutalina/scout-backend-go/internal/database"
	"github.com/scoutalina/scout-backend-go/internal/models"
	"github.com/scoutalina/scout-backend-go/internal/spatial"
)

// PropertyRepository handles read and catalog-sync operations for properties.
// Property records are owned by the enrichment collaborator; this service
// only stores what it is given and indexes the coordinates.
type PropertyRepository struct {
	db *sql.DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *sql.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

const propertyColumns = `id, COALESCE(external_id, ''), address, city, state, zip,
	latitude, longitude, price, bedrooms, bathrooms, sqft, lot_sqft, year_built,
	property_type, photo_url, source, last_updated`

func scanProperty(row interface{ Scan(...interface{}) error }) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID, &p.ExternalID, &p.Address, &p.City, &p.State, &p.Zip,
		&p.Latitude, &p.Longitude, &p.Price, &p.Bedrooms, &p.Bathrooms,
		&p.Sqft, &p.LotSqft, &p.YearBuilt, &p.PropertyType, &p.PhotoURL,
		&p.Source, &p.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID retrieves a single property, nil if unknown.
func (r *PropertyRepository) GetByID(id int64) (*models.Property, error) {
	query := fmt.Sprintf("SELECT %s FROM properties WHERE id = ?", propertyColumns)

	p, err := scanProperty(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return p, nil
}

// GetByIDs retrieves the given properties keyed by id. Unknown ids are
// simply absent from the result.
func (r *PropertyRepository) GetByIDs(ids []int64) (map[int64]*models.Property, error) {
	result := make(map[int64]*models.Property)
	if len(ids) == 0 {
		return result, nil
	}

	const chunkSize = 500
	for start := 0; start < len(ids); start += chunkSize {
		end := start + chunkSize
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]

		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(chunk)), ", ")
		args := make([]interface{}, len(chunk))
		for i, id := range chunk {
			args[i] = id
		}

		query := fmt.Sprintf("SELECT %s FROM properties WHERE id IN (%s)", propertyColumns, placeholders)
		rows, err := r.db.Query(query, args...)
		if err != nil {
			return nil, fmt.Errorf("failed to query properties: %w", err)
		}
		for rows.Next() {
			p, err := scanProperty(rows)
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan property: %w", err)
			}
			result[p.ID] = p
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to iterate properties: %w", err)
		}
		rows.Close()
	}

	return result, nil
}

// AllEntries streams every property's id and coordinate for the index warm
// build.
func (r *PropertyRepository) AllEntries() ([]spatial.Entry, error) {
	rows, err := r.db.Query("SELECT id, latitude, longitude FROM properties")
	if err != nil {
		return nil, fmt.Errorf("failed to query property coordinates: %w", err)
	}
	defer rows.Close()

	var entries []spatial.Entry
	for rows.Next() {
		var e spatial.Entry
		if err := rows.Scan(&e.ID, &e.Lat, &e.Lon); err != nil {
			return nil, fmt.Errorf("failed to scan property coordinate: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate property coordinates: %w", err)
	}

	return entries, nil
}

// Upsert inserts or updates a property by external id and returns the stored
// row together with the previous coordinate (valid when existed is true), so
// the caller can update index cell membership. The previous-coordinate read
// and the write happen in one transaction, so two concurrent syncs of the
// same external id cannot hand back a stale coordinate.
func (r *PropertyRepository) Upsert(p *models.Property) (existed bool, oldLat, oldLon float64, err error) {
	txErr := database.Transaction(r.db, func(tx *sql.Tx) error {
		prevQuery := "SELECT id, latitude, longitude FROM properties WHERE external_id = ?"
		var prevID int64
		scanErr := tx.QueryRow(prevQuery, p.ExternalID).Scan(&prevID, &oldLat, &oldLon)
		if scanErr != nil && scanErr != sql.ErrNoRows {
			return fmt.Errorf("failed to look up property: %w", scanErr)
		}
		existed = scanErr == nil

		query := `INSERT INTO properties
			(external_id, address, city, state, zip, latitude, longitude, price, bedrooms,
			 bathrooms, sqft, lot_sqft, year_built, property_type, photo_url, source, last_updated)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
			ON CONFLICT(external_id) DO UPDATE SET
				address = excluded.address,
				city = excluded.city,
				state = excluded.state,
				zip = excluded.zip,
				latitude = excluded.latitude,
				longitude = excluded.longitude,
				price = excluded.price,
				bedrooms = excluded.bedrooms,
				bathrooms = excluded.bathrooms,
				sqft = excluded.sqft,
				lot_sqft = excluded.lot_sqft,
				year_built = excluded.year_built,
				property_type = excluded.property_type,
				photo_url = excluded.photo_url,
				source = excluded.source,
				last_updated = excluded.last_updated`

		if _, execErr := tx.Exec(query,
			p.ExternalID, p.Address, p.City, p.State, p.Zip, p.Latitude, p.Longitude,
			p.Price, p.Bedrooms, p.Bathrooms, p.Sqft, p.LotSqft, p.YearBuilt,
			p.PropertyType, p.PhotoURL, p.Source,
		); execErr != nil {
			return fmt.Errorf("failed to upsert property: %w", execErr)
		}

		if existed {
			p.ID = prevID
			return nil
		}
		if scanErr := tx.QueryRow("SELECT id FROM properties WHERE external_id = ?", p.ExternalID).Scan(&p.ID); scanErr != nil {
			return fmt.Errorf("failed to read upserted property id: %w", scanErr)
		}
		return nil
	})
	if txErr != nil {
		return false, 0, 0, txErr
	}

	return existed, oldLat, oldLon, nil
}
