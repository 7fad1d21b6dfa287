package service

import (
	"testing"

	"github.com/scoutalina/scout-backend-go/internal/apperr"
	"github.com/scoutalina/scout-backend-go/internal/models"
)

func TestUpsert_Validation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		req  models.PropertyUpsertRequest
	}{
		{"missing external id", models.PropertyUpsertRequest{Lat: fpt(41.5), Lon: fpt(-72.7)}},
		{"missing coordinates", models.PropertyUpsertRequest{ExternalID: "ext-x"}},
		{"out of range", models.PropertyUpsertRequest{ExternalID: "ext-x", Lat: fpt(97), Lon: fpt(-72.7)}},
	}

	for _, tc := range cases {
		if _, err := env.properties.Upsert(tc.req); !apperr.IsValidation(err) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestUpsert_MoveRelocatesIndexEntry(t *testing.T) {
	env := newTestEnv(t)

	prop := env.upsertProperty(t, "ext-m1", 41.505, -72.695, 800_000)
	if err := env.properties.WarmBuild(); err != nil {
		t.Fatalf("WarmBuild failed: %v", err)
	}

	// Re-sync with a corrected coordinate well outside the old cell.
	updated, err := env.properties.Upsert(models.PropertyUpsertRequest{
		ExternalID: "ext-m1",
		Lat:        fpt(41.605),
		Lon:        fpt(-72.595),
		Price:      800_000,
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if updated.ID != prop.ID {
		t.Fatalf("Upsert changed the property id: %d vs %d", updated.ID, prop.ID)
	}

	old, err := env.index.Query(41.505, -72.695, 150)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(old) != 0 {
		t.Errorf("Index still holds entry at the old coordinate: %v", old)
	}

	moved, err := env.index.Query(41.605, -72.595, 150)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(moved) != 1 || moved[0].ID != prop.ID {
		t.Errorf("Index missing entry at the new coordinate: %v", moved)
	}
}

func TestUpsert_RepeatKeepsSingleIndexEntry(t *testing.T) {
	env := newTestEnv(t)

	env.upsertProperty(t, "ext-m2", 41.505, -72.695, 800_000)
	if err := env.properties.WarmBuild(); err != nil {
		t.Fatalf("WarmBuild failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		env.upsertProperty(t, "ext-m2", 41.505, -72.695, 800_000)
	}

	if n := env.index.Len(); n != 1 {
		t.Errorf("Expected a single index entry after repeated syncs, got %d", n)
	}
}
