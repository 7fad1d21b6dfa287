package service

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/scoutalina/scout-backend-go/internal/database"
	"github.com/scoutalina/scout-backend-go/internal/models"
	"github.com/scoutalina/scout-backend-go/internal/repository"
	"github.com/scoutalina/scout-backend-go/internal/spatial"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

type testEnv struct {
	db         *sql.DB
	index      *spatial.Grid
	routes     *RouteService
	matches    *MatchService
	properties *PropertyService
	watchlist  *WatchlistService
	stats      *StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	index := spatial.NewGrid(500)

	routeRepo := repository.NewRouteRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	return &testEnv{
		db:         db,
		index:      index,
		routes:     NewRouteService(routeRepo),
		matches:    NewMatchService(routeRepo, propertyRepo, matchRepo, watchlistRepo, index, 150, testThresholds),
		properties: NewPropertyService(propertyRepo, index),
		watchlist:  NewWatchlistService(watchlistRepo, propertyRepo),
		stats:      NewStatsService(statsRepo),
	}
}

func fpt(v float64) *float64 { return &v }

func ipt(v int64) *int64 { return &v }

func uploadPoints(points ...models.UploadPoint) models.RouteUploadRequest {
	return models.RouteUploadRequest{Points: points}
}

func (e *testEnv) upsertProperty(t *testing.T, externalID string, lat, lon, price float64) *models.Property {
	t.Helper()

	prop, err := e.properties.Upsert(models.PropertyUpsertRequest{
		ExternalID: externalID,
		Address:    "1 Test Ln",
		Lat:        fpt(lat),
		Lon:        fpt(lon),
		Price:      price,
	})
	if err != nil {
		t.Fatalf("Failed to upsert property %s: %v", externalID, err)
	}
	return prop
}
