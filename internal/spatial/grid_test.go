package spatial

import (
	"testing"
)

func TestGrid_UnavailableBeforeBuild(t *testing.T) {
	g := NewGrid(500)

	if g.Ready() {
		t.Error("Grid should not be ready before Build")
	}
	if _, err := g.Query(41.5, -72.7, 150); err != ErrIndexUnavailable {
		t.Errorf("Expected ErrIndexUnavailable, got %v", err)
	}
}

func TestGrid_EmptyIndexReturnsEmpty(t *testing.T) {
	g := NewGrid(500)
	g.Build(nil)

	results, err := g.Query(41.5, -72.7, 150)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected empty result, got %d", len(results))
	}
}

func TestGrid_QueryRadius(t *testing.T) {
	g := NewGrid(500)
	g.Build([]Entry{
		{ID: 1, Lat: 41.505, Lon: -72.695}, // ~60m from query center
		{ID: 2, Lat: 41.60, Lon: -72.60},   // ~13km away
	})

	results, err := g.Query(41.5055, -72.695, 150)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].ID != 1 {
		t.Errorf("Expected property 1, got %d", results[0].ID)
	}
	if results[0].Meters > 150 {
		t.Errorf("Result outside radius: %f", results[0].Meters)
	}
}

func TestGrid_RadiusLargerThanCell(t *testing.T) {
	// A query radius far beyond the cell size must widen the neighbor span,
	// not miss entries.
	g := NewGrid(100)
	g.Build([]Entry{
		{ID: 1, Lat: 41.52, Lon: -72.70}, // ~2.2km north of the query center
	})

	results, err := g.Query(41.50, -72.70, 3000)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected entry within widened radius, got %d results", len(results))
	}
}

func TestGrid_QueryAcrossAntimeridian(t *testing.T) {
	// Entries just east of +180 and a query center just west of -180 are a
	// few hundred meters apart on the ground; the cell ring must wrap so
	// neither side hides the other.
	g := NewGrid(500)
	g.Build([]Entry{
		{ID: 1, Lat: 0, Lon: 179.9993},
		{ID: 2, Lat: 0, Lon: 170.0}, // far along the equator
	})

	results, err := g.Query(0, -179.9993, 200)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result across the antimeridian, got %d", len(results))
	}
	if results[0].ID != 1 {
		t.Errorf("Expected entry 1, got %d", results[0].ID)
	}
	if results[0].Meters > 200 {
		t.Errorf("Result outside radius: %f", results[0].Meters)
	}

	// And the mirror direction.
	g.Insert(Entry{ID: 3, Lat: 0, Lon: -179.9995})
	results, err = g.Query(0, 179.9995, 200)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	for _, c := range results {
		if c.ID == 2 {
			t.Error("Far entry should not match")
		}
	}
	if len(results) != 2 {
		t.Errorf("Expected both near-antimeridian entries, got %d", len(results))
	}
}

func TestGrid_InsertRemoveMove(t *testing.T) {
	g := NewGrid(500)
	g.Build(nil)

	g.Insert(Entry{ID: 7, Lat: 41.50, Lon: -72.70})
	if n := g.Len(); n != 1 {
		t.Fatalf("Expected 1 entry, got %d", n)
	}

	results, _ := g.Query(41.50, -72.70, 50)
	if len(results) != 1 || results[0].ID != 7 {
		t.Fatalf("Inserted entry not found: %v", results)
	}

	g.Move(7, 41.50, -72.70, 41.60, -72.60)
	results, _ = g.Query(41.50, -72.70, 50)
	if len(results) != 0 {
		t.Errorf("Entry still at old location after Move")
	}
	results, _ = g.Query(41.60, -72.60, 50)
	if len(results) != 1 {
		t.Errorf("Entry not found at new location after Move")
	}

	g.Remove(7, 41.60, -72.60)
	if n := g.Len(); n != 0 {
		t.Errorf("Expected empty grid after Remove, got %d", n)
	}

	// Removing an unknown entry is a no-op.
	g.Remove(99, 0, 0)
}
