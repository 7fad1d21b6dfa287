package models

// RoutePoint represents a single GPS sample within a persisted route.
// Points are stored in timestamp order; LatE5/LonE5 are the 1e-5 degree
// rounded coordinates that form the upload idempotency key together with
// the owning user and timestamp.
type RoutePoint struct {
	ID        int64   `json:"id" db:"id"`
	RouteID   int64   `json:"routeId" db:"route_id"`
	UserID    string  `json:"-" db:"user_id"`
	Timestamp int64   `json:"timestamp" db:"ts_ms"` // Unix timestamp in milliseconds
	Latitude  float64 `json:"lat" db:"latitude"`
	Longitude float64 `json:"lon" db:"longitude"`
	LatE5     int64   `json:"-" db:"lat_e5"`
	LonE5     int64   `json:"-" db:"lon_e5"`
	AccuracyM float64 `json:"accuracy,omitempty" db:"accuracy_m"`
	AltitudeM float64 `json:"altitude,omitempty" db:"altitude_m"`
	Seq       int     `json:"seq" db:"seq"`
}

// Route represents one recorded drive: an ordered point sequence with its
// derived geometry and cumulative great-circle distance.
type Route struct {
	ID             int64        `json:"id" db:"id"`
	UserID         string       `json:"userId" db:"user_id"`
	BatchID        string       `json:"batchId,omitempty" db:"batch_id"`
	RecordedDate   string       `json:"recordedDate,omitempty" db:"recorded_date"` // Format: 2006-01-02
	TotalDistanceM float64      `json:"totalDistanceM" db:"total_distance_m"`
	PointCount     int          `json:"pointCount" db:"point_count"`
	CreatedAt      string       `json:"createdAt" db:"created_at"`
	Points         []RoutePoint `json:"points,omitempty"`
}

// GeoJSON returns the route geometry as a GeoJSON LineString.
func (r *Route) GeoJSON() map[string]any {
	coords := make([][]float64, 0, len(r.Points))
	for _, p := range r.Points {
		coords = append(coords, []float64{p.Longitude, p.Latitude})
	}
	return map[string]any{
		"type":        "LineString",
		"coordinates": coords,
	}
}

// UploadPoint is a single raw location sample in an upload batch. Lat, Lon and
// Timestamp are pointers so missing fields can be told apart from legitimate
// zero values (the equator, the epoch).
type UploadPoint struct {
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Timestamp *int64   `json:"timestamp"`
	AccuracyM float64  `json:"accuracy"`
	AltitudeM float64  `json:"altitude"`
}

// RouteUploadRequest is the ingestion payload: one batch of raw points,
// optionally tagged with a client-generated batch id for replay detection.
type RouteUploadRequest struct {
	BatchID      string        `json:"batch_id"`
	RecordedDate string        `json:"recorded_date"`
	Points       []UploadPoint `json:"points"`
}

// RouteUploadResult reports the created (or replayed) route.
type RouteUploadResult struct {
	RouteID           int64   `json:"route_id"`
	BatchID           string  `json:"batch_id"`
	TotalDistanceM    float64 `json:"total_distance_m"`
	PointCount        int     `json:"point_count"`
	SkippedDuplicates int     `json:"skipped_duplicates"`
	Replayed          bool    `json:"replayed"`
}

// RouteSummary is the list-view projection of a route. BBox is the GeoJSON
// bounding box [minLon, minLat, maxLon, maxLat] for map viewport fitting.
type RouteSummary struct {
	ID             int64          `json:"id"`
	RecordedDate   string         `json:"recordedDate,omitempty"`
	TotalDistanceM float64        `json:"totalDistanceM"`
	PointCount     int            `json:"pointCount"`
	PropertyCount  int            `json:"propertyCount"`
	CreatedAt      string         `json:"createdAt"`
	GeoJSON        map[string]any `json:"geojson"`
	BBox           []float64      `json:"bbox,omitempty"`
}

// RouteListFilter filters the route listing.
type RouteListFilter struct {
	Date string `form:"date"` // Format: 2006-01-02
}
