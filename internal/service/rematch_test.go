package service

import (
	"testing"

	"github.com/scoutalina/scout-backend-go/internal/apperr"
	"github.com/scoutalina/scout-backend-go/internal/models"
)

func (e *testEnv) uploadTestRoute(t *testing.T, user string) int64 {
	t.Helper()

	result, err := e.routes.Upload(user, uploadPoints(
		models.UploadPoint{Lat: fpt(41.50), Lon: fpt(-72.70), Timestamp: ipt(1000)},
		models.UploadPoint{Lat: fpt(41.51), Lon: fpt(-72.69), Timestamp: ipt(2000)},
	))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	return result.RouteID
}

func TestRematch_FindsNearbyProperty(t *testing.T) {
	env := newTestEnv(t)

	near := env.upsertProperty(t, "ext-near", 41.505, -72.695, 1_200_000)
	env.upsertProperty(t, "ext-far", 41.60, -72.60, 300_000)
	if err := env.properties.WarmBuild(); err != nil {
		t.Fatalf("WarmBuild failed: %v", err)
	}

	routeID := env.uploadTestRoute(t, testUser)

	result, err := env.matches.Rematch(testUser, routeID)
	if err != nil {
		t.Fatalf("Rematch failed: %v", err)
	}
	if result.Count != 1 {
		t.Fatalf("Expected 1 match, got %d", result.Count)
	}

	m := result.Matches[0]
	if m.PropertyID != near.ID {
		t.Errorf("Matched property %d, want %d", m.PropertyID, near.ID)
	}
	if m.DistanceM > 150 {
		t.Errorf("Match distance %f exceeds buffer", m.DistanceM)
	}
	if m.Rarity != TierEpic {
		t.Errorf("Expected epic rarity for $1.2M, got %s", m.Rarity)
	}
}

func TestRematch_BeforeWarmBuildIsUnavailable(t *testing.T) {
	env := newTestEnv(t)
	routeID := env.uploadTestRoute(t, testUser)

	if _, err := env.matches.Rematch(testUser, routeID); !apperr.IsIndexUnavailable(err) {
		t.Errorf("Expected index-unavailable error, got %v", err)
	}
}

func TestRematch_EmptyCatalogGivesEmptySet(t *testing.T) {
	env := newTestEnv(t)
	if err := env.properties.WarmBuild(); err != nil {
		t.Fatalf("WarmBuild failed: %v", err)
	}

	routeID := env.uploadTestRoute(t, testUser)

	result, err := env.matches.Rematch(testUser, routeID)
	if err != nil {
		t.Fatalf("Rematch failed: %v", err)
	}
	if result.Count != 0 {
		t.Errorf("Expected empty match set, got %d", result.Count)
	}
}

func TestRematch_SupersedesStoredMatches(t *testing.T) {
	env := newTestEnv(t)

	env.upsertProperty(t, "ext-1", 41.505, -72.695, 400_000)
	if err := env.properties.WarmBuild(); err != nil {
		t.Fatalf("WarmBuild failed: %v", err)
	}

	routeID := env.uploadTestRoute(t, testUser)

	first, err := env.matches.Rematch(testUser, routeID)
	if err != nil {
		t.Fatalf("First rematch failed: %v", err)
	}
	if first.Count != 1 {
		t.Fatalf("Expected 1 match, got %d", first.Count)
	}

	// Catalog grows; the rematch must rebuild the set wholesale, never mix
	// old and new rows.
	env.upsertProperty(t, "ext-2", 41.5005, -72.6995, 2_500_000)

	second, err := env.matches.Rematch(testUser, routeID)
	if err != nil {
		t.Fatalf("Second rematch failed: %v", err)
	}
	if second.Count != 2 {
		t.Fatalf("Expected 2 matches after catalog change, got %d", second.Count)
	}

	stored, err := env.matches.StoredMatches(testUser, routeID)
	if err != nil {
		t.Fatalf("StoredMatches failed: %v", err)
	}
	if stored.Count != 2 {
		t.Errorf("Stored projection has %d rows, want 2", stored.Count)
	}
}

func TestRematch_Deterministic(t *testing.T) {
	env := newTestEnv(t)

	env.upsertProperty(t, "ext-a", 41.505, -72.695, 600_000)
	env.upsertProperty(t, "ext-b", 41.5005, -72.6995, 100_000)
	env.upsertProperty(t, "ext-c", 41.509, -72.691, 2_100_000)
	if err := env.properties.WarmBuild(); err != nil {
		t.Fatalf("WarmBuild failed: %v", err)
	}

	routeID := env.uploadTestRoute(t, testUser)

	first, err := env.matches.Rematch(testUser, routeID)
	if err != nil {
		t.Fatalf("Rematch failed: %v", err)
	}

	for run := 0; run < 3; run++ {
		again, err := env.matches.Rematch(testUser, routeID)
		if err != nil {
			t.Fatalf("Rematch run %d failed: %v", run, err)
		}
		if again.Count != first.Count {
			t.Fatalf("Match count changed between runs")
		}
		for i := range first.Matches {
			if again.Matches[i].PropertyID != first.Matches[i].PropertyID ||
				again.Matches[i].DistanceM != first.Matches[i].DistanceM ||
				again.Matches[i].Rarity != first.Matches[i].Rarity {
				t.Fatalf("Run %d differs at position %d", run, i)
			}
		}
	}
}

func TestStoredMatches_OrderedByDistanceWithWatchlistFlag(t *testing.T) {
	env := newTestEnv(t)

	closeProp := env.upsertProperty(t, "ext-close", 41.505, -72.695, 600_000)
	farProp := env.upsertProperty(t, "ext-farish", 41.5095, -72.6895, 900_000)
	if err := env.properties.WarmBuild(); err != nil {
		t.Fatalf("WarmBuild failed: %v", err)
	}

	routeID := env.uploadTestRoute(t, testUser)
	if _, err := env.matches.Rematch(testUser, routeID); err != nil {
		t.Fatalf("Rematch failed: %v", err)
	}

	if _, err := env.watchlist.Add(testUser, models.WatchlistAddRequest{PropertyID: closeProp.ID}); err != nil {
		t.Fatalf("Watchlist add failed: %v", err)
	}

	stored, err := env.matches.StoredMatches(testUser, routeID)
	if err != nil {
		t.Fatalf("StoredMatches failed: %v", err)
	}

	for i := 1; i < len(stored.Matches); i++ {
		if stored.Matches[i].DistanceM < stored.Matches[i-1].DistanceM {
			t.Fatal("Matches not ordered by ascending distance")
		}
	}

	for _, m := range stored.Matches {
		switch m.PropertyID {
		case closeProp.ID:
			if !m.IsInWatchlist {
				t.Error("Watchlisted property not flagged")
			}
		case farProp.ID:
			if m.IsInWatchlist {
				t.Error("Unwatched property flagged as watchlisted")
			}
		}
		if m.Property == nil {
			t.Error("Match missing property attributes")
		}
	}
}

func TestRematch_UnknownRouteIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	if err := env.properties.WarmBuild(); err != nil {
		t.Fatalf("WarmBuild failed: %v", err)
	}

	if _, err := env.matches.Rematch(testUser, 999); !apperr.IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}
}
