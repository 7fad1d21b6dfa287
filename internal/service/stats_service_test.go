package service

import (
	"testing"

	"github.com/scoutalina/scout-backend-go/internal/models"
)

func TestSummary_EmptyUser(t *testing.T) {
	env := newTestEnv(t)

	summary, err := env.stats.Summary("nobody")
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if summary.TotalRoutes != 0 || summary.TotalDistanceM != 0 || summary.TotalProperties != 0 {
		t.Errorf("Expected zero totals for unknown user, got %+v", summary)
	}
}

func TestSummary_AggregatesRoutesAndDiscoveries(t *testing.T) {
	env := newTestEnv(t)

	env.upsertProperty(t, "ext-s1", 41.505, -72.695, 600_000)
	env.upsertProperty(t, "ext-s2", 41.509, -72.691, 2_100_000)
	if err := env.properties.WarmBuild(); err != nil {
		t.Fatalf("WarmBuild failed: %v", err)
	}

	first, err := env.routes.Upload(testUser, uploadPoints(
		models.UploadPoint{Lat: fpt(41.50), Lon: fpt(-72.70), Timestamp: ipt(1000)},
		models.UploadPoint{Lat: fpt(41.51), Lon: fpt(-72.69), Timestamp: ipt(2000)},
	))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	second, err := env.routes.Upload(testUser, uploadPoints(
		models.UploadPoint{Lat: fpt(41.60), Lon: fpt(-72.60), Timestamp: ipt(3000)},
		models.UploadPoint{Lat: fpt(41.61), Lon: fpt(-72.59), Timestamp: ipt(4000)},
	))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if _, err := env.matches.Rematch(testUser, first.RouteID); err != nil {
		t.Fatalf("Rematch failed: %v", err)
	}
	if _, err := env.matches.Rematch(testUser, second.RouteID); err != nil {
		t.Fatalf("Rematch failed: %v", err)
	}

	summary, err := env.stats.Summary(testUser)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	if summary.TotalRoutes != 2 {
		t.Errorf("TotalRoutes = %d, want 2", summary.TotalRoutes)
	}
	wantDistance := first.TotalDistanceM + second.TotalDistanceM
	if diff := summary.TotalDistanceM - wantDistance; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("TotalDistanceM = %f, want %f", summary.TotalDistanceM, wantDistance)
	}
	if summary.TotalProperties != 2 {
		t.Errorf("TotalProperties = %d, want 2", summary.TotalProperties)
	}
	if summary.RarityBreakdown.Rare != 1 || summary.RarityBreakdown.Legendary != 1 {
		t.Errorf("Unexpected rarity breakdown: %+v", summary.RarityBreakdown)
	}
	if summary.ThisWeek.Routes != 2 {
		t.Errorf("ThisWeek.Routes = %d, want 2 (routes just created)", summary.ThisWeek.Routes)
	}
	if summary.PriceQuartiles.Median <= 0 {
		t.Errorf("Expected positive median price, got %f", summary.PriceQuartiles.Median)
	}
}
