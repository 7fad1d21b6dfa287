package models

// RouteMatch associates a route with one property found within the buffer
// distance, tagged with the minimum distance over all route segments and the
// rarity tier derived from the property's attributes. The full match set for
// a route is a recomputable projection: rematching rewrites it wholesale.
type RouteMatch struct {
	RouteID       int64     `json:"route_id" db:"route_id"`
	PropertyID    int64     `json:"property_id" db:"property_id"`
	DistanceM     float64   `json:"distance_m" db:"distance_m"`
	Rarity        string    `json:"rarity_tier" db:"rarity"`
	DiscoveredAt  string    `json:"discovered_at,omitempty" db:"discovered_at"`
	Property      *Property `json:"property,omitempty"`
	IsInWatchlist bool      `json:"is_in_watchlist"`
}

// MatchResult is the response to a match run.
type MatchResult struct {
	RouteID int64        `json:"route_id"`
	Count   int          `json:"count"`
	Matches []RouteMatch `json:"matches"`
}
