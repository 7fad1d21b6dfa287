package spatial

import (
	"errors"
	"math"
	"sync"
)

// ErrIndexUnavailable is returned by Query before the initial catalog build
// has completed. Callers should treat it as transient and retry.
var ErrIndexUnavailable = errors.New("spatial index not built")

// Entry is an identified coordinate held by the index.
type Entry struct {
	ID  int64
	Lat float64
	Lon float64
}

// Candidate is an index entry returned by a radius query, with its exact
// great-circle distance from the query center.
type Candidate struct {
	ID     int64
	Lat    float64
	Lon    float64
	Meters float64
}

type cellKey struct {
	latIdx int32
	lonIdx int32
}

// Grid partitions the coordinate space into fixed-size square cells and
// buckets entries by the cell containing their coordinate. A radius query
// inspects only the cells overlapping the query circle and filters candidates
// by exact distance, so query cost tracks local density, not catalog size.
// Insert and Remove touch a single cell.
//
// Readers run concurrently; mutation takes a short exclusive lock, so a
// reader never observes a half-updated cell.
type Grid struct {
	mu       sync.RWMutex
	cellDeg  float64
	lonCells int32
	cells    map[cellKey]map[int64]Entry
	ready    bool
}

// NewGrid creates an empty, not-yet-ready grid with the given cell edge
// length in meters. Cell size should be at least the expected query radius
// to bound the number of neighboring cells a query inspects.
func NewGrid(cellMeters float64) *Grid {
	if cellMeters <= 0 {
		cellMeters = 500
	}
	cellDeg := cellMeters / metersPerDegreeLat
	lonCells := int32(math.Ceil(360 / cellDeg))
	if lonCells < 1 {
		lonCells = 1
	}
	return &Grid{
		cellDeg:  cellDeg,
		lonCells: lonCells,
		cells:    make(map[cellKey]map[int64]Entry),
	}
}

// Build replaces the entire index content with the given entries and marks
// the index ready. Called once at startup from the property catalog.
func (g *Grid) Build(entries []Entry) {
	cells := make(map[cellKey]map[int64]Entry)
	for _, e := range entries {
		key := g.keyFor(e.Lat, e.Lon)
		cell, ok := cells[key]
		if !ok {
			cell = make(map[int64]Entry)
			cells[key] = cell
		}
		cell[e.ID] = e
	}

	g.mu.Lock()
	g.cells = cells
	g.ready = true
	g.mu.Unlock()
}

// Ready reports whether the initial build has completed.
func (g *Grid) Ready() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ready
}

// Len returns the number of indexed entries.
func (g *Grid) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n := 0
	for _, cell := range g.cells {
		n += len(cell)
	}
	return n
}

// Insert adds or repositions a single entry.
func (g *Grid) Insert(e Entry) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.insertLocked(e)
}

// Remove deletes an entry previously inserted at the given coordinate.
// Removing an unknown entry is a no-op.
func (g *Grid) Remove(id int64, lat, lon float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.removeLocked(id, lat, lon)
}

// Move relocates an entry from its old coordinate to a new one under a single
// exclusive lock, so no reader sees the entry in both or neither cell.
func (g *Grid) Move(id int64, oldLat, oldLon, newLat, newLon float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.removeLocked(id, oldLat, oldLon)
	g.insertLocked(Entry{ID: id, Lat: newLat, Lon: newLon})
}

// Query returns all entries within radiusM meters of the given coordinate.
// It inspects the cell containing the center plus every neighboring cell the
// radius can reach; larger radii just widen the neighbor span, correctness is
// unchanged.
func (g *Grid) Query(lat, lon, radiusM float64) ([]Candidate, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.ready {
		return nil, ErrIndexUnavailable
	}
	if radiusM < 0 {
		radiusM = 0
	}

	cellMeters := g.cellDeg * metersPerDegreeLat
	spanLat := int32(math.Ceil(radiusM/cellMeters)) + 1

	// Longitude degrees shrink with latitude; widen the span accordingly and
	// cap it at a full wrap so polar queries stay bounded.
	mPerDegLon := metersPerDegreeLat * math.Cos(lat*math.Pi/180)
	spanLon := g.lonCells
	if mPerDegLon > 1 {
		spanLon = int32(math.Ceil(radiusM/(g.cellDeg*mPerDegLon))) + 1
		if spanLon > g.lonCells {
			spanLon = g.lonCells
		}
	}

	center := g.keyFor(lat, lon)

	// Longitude indices wrap at the antimeridian, so a query circle crossing
	// +-180 reaches the cells on the far side. Deduplicate so a span wider
	// than the full wrap never visits a cell twice.
	lonSeen := make(map[int32]bool, 2*spanLon+1)
	lonIdxs := make([]int32, 0, 2*spanLon+1)
	for dj := -spanLon; dj <= spanLon; dj++ {
		j := (center.lonIdx + dj) % g.lonCells
		if j < 0 {
			j += g.lonCells
		}
		if lonSeen[j] {
			continue
		}
		lonSeen[j] = true
		lonIdxs = append(lonIdxs, j)
	}

	var results []Candidate
	for di := -spanLat; di <= spanLat; di++ {
		for _, j := range lonIdxs {
			cell, ok := g.cells[cellKey{center.latIdx + di, j}]
			if !ok {
				continue
			}
			for _, e := range cell {
				d := Distance(lat, lon, e.Lat, e.Lon)
				if d <= radiusM {
					results = append(results, Candidate{ID: e.ID, Lat: e.Lat, Lon: e.Lon, Meters: d})
				}
			}
		}
	}

	return results, nil
}

// keyFor buckets a coordinate. Longitude indices are normalized into
// [0, lonCells) so +180 and -180 land in the same cell ring.
func (g *Grid) keyFor(lat, lon float64) cellKey {
	lonIdx := int32(math.Floor((lon+180)/g.cellDeg)) % g.lonCells
	if lonIdx < 0 {
		lonIdx += g.lonCells
	}
	return cellKey{
		latIdx: int32(math.Floor(lat / g.cellDeg)),
		lonIdx: lonIdx,
	}
}

func (g *Grid) insertLocked(e Entry) {
	key := g.keyFor(e.Lat, e.Lon)
	cell, ok := g.cells[key]
	if !ok {
		cell = make(map[int64]Entry)
		g.cells[key] = cell
	}
	cell[e.ID] = e
}

func (g *Grid) removeLocked(id int64, lat, lon float64) {
	key := g.keyFor(lat, lon)
	cell, ok := g.cells[key]
	if !ok {
		return
	}
	delete(cell, id)
	if len(cell) == 0 {
		delete(g.cells, key)
	}
}
