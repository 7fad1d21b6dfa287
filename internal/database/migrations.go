package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations are embedded so the binary carries its own schema. Versions are
// applied in order, each in its own transaction, and recorded in the
// migrations table.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_routes",
		SQL: `
			CREATE TABLE IF NOT EXISTS routes (
				id               INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id          TEXT NOT NULL,
				batch_id         TEXT,
				recorded_date    TEXT,
				total_distance_m REAL NOT NULL DEFAULT 0,
				point_count      INTEGER NOT NULL DEFAULT 0,
				created_at       TEXT NOT NULL DEFAULT (datetime('now'))
			);
			CREATE INDEX IF NOT EXISTS idx_routes_user_date ON routes(user_id, recorded_date);
			CREATE UNIQUE INDEX IF NOT EXISTS uq_routes_user_batch ON routes(user_id, batch_id)
				WHERE batch_id IS NOT NULL AND batch_id != '';

			CREATE TABLE IF NOT EXISTS route_points (
				id         INTEGER PRIMARY KEY AUTOINCREMENT,
				route_id   INTEGER NOT NULL REFERENCES routes(id) ON DELETE CASCADE,
				user_id    TEXT NOT NULL,
				ts_ms      INTEGER NOT NULL,
				latitude   REAL NOT NULL,
				longitude  REAL NOT NULL,
				lat_e5     INTEGER NOT NULL,
				lon_e5     INTEGER NOT NULL,
				accuracy_m REAL NOT NULL DEFAULT 0,
				altitude_m REAL NOT NULL DEFAULT 0,
				seq        INTEGER NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_route_points_route_seq ON route_points(route_id, seq);
			CREATE UNIQUE INDEX IF NOT EXISTS uq_route_points_identity
				ON route_points(user_id, ts_ms, lat_e5, lon_e5);
		`,
	},
	{
		Version: 2,
		Name:    "create_properties",
		SQL: `
			CREATE TABLE IF NOT EXISTS properties (
				id            INTEGER PRIMARY KEY AUTOINCREMENT,
				external_id   TEXT UNIQUE,
				address       TEXT NOT NULL DEFAULT '',
				city          TEXT NOT NULL DEFAULT '',
				state         TEXT NOT NULL DEFAULT '',
				zip           TEXT NOT NULL DEFAULT '',
				latitude      REAL NOT NULL,
				longitude     REAL NOT NULL,
				price         REAL NOT NULL DEFAULT 0,
				bedrooms      INTEGER NOT NULL DEFAULT 0,
				bathrooms     REAL NOT NULL DEFAULT 0,
				sqft          INTEGER NOT NULL DEFAULT 0,
				lot_sqft      INTEGER NOT NULL DEFAULT 0,
				year_built    INTEGER NOT NULL DEFAULT 0,
				property_type TEXT NOT NULL DEFAULT '',
				photo_url     TEXT NOT NULL DEFAULT '',
				source        TEXT NOT NULL DEFAULT '',
				last_updated  TEXT NOT NULL DEFAULT (datetime('now'))
			);
			CREATE INDEX IF NOT EXISTS idx_properties_city_price ON properties(city, price);
		`,
	},
	{
		Version: 3,
		Name:    "create_route_properties",
		SQL: `
			CREATE TABLE IF NOT EXISTS route_properties (
				route_id      INTEGER NOT NULL REFERENCES routes(id) ON DELETE CASCADE,
				property_id   INTEGER NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
				distance_m    REAL NOT NULL,
				rarity        TEXT NOT NULL,
				discovered_at TEXT NOT NULL DEFAULT (datetime('now')),
				PRIMARY KEY (route_id, property_id)
			);
			CREATE INDEX IF NOT EXISTS idx_route_properties_distance ON route_properties(route_id, distance_m);
		`,
	},
	{
		Version: 4,
		Name:    "create_watchlists",
		SQL: `
			CREATE TABLE IF NOT EXISTS watchlists (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id     TEXT NOT NULL,
				property_id INTEGER NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
				added_at    TEXT NOT NULL DEFAULT (datetime('now')),
				notes       TEXT NOT NULL DEFAULT '',
				UNIQUE (user_id, property_id)
			);
		`,
	},
}

// Migrate applies all pending migrations.
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return err
		}
	}

	return nil
}

func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedVersions(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, nil
}

func applyMigration(db *sql.DB, migration Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(migration.SQL); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to execute migration %d: %w", migration.Version, err)
	}

	if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", migration.Version, migration.Name); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
	}

	log.Printf("Applied migration %d: %s", migration.Version, migration.Name)
	return nil
}
