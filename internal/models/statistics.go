package models

// RarityBreakdown counts discovered properties per tier.
type RarityBreakdown struct {
	Common    int `json:"common"`
	Rare      int `json:"rare"`
	Epic      int `json:"epic"`
	Legendary int `json:"legendary"`
}

// PriceQuartiles summarizes the price distribution of a user's discoveries.
type PriceQuartiles struct {
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
}

// WeekStats is the last-7-days slice of the summary.
type WeekStats struct {
	Routes     int     `json:"routes"`
	Properties int     `json:"properties"`
	DistanceM  float64 `json:"distance_m"`
}

// StatsSummary aggregates a user's activity for the dashboard. Everything in
// it derives from persisted routes and match projections; there is no
// separate source of truth.
type StatsSummary struct {
	TotalRoutes     int             `json:"total_routes"`
	TotalDistanceM  float64         `json:"total_distance_m"`
	TotalProperties int             `json:"total_properties"`
	RarityBreakdown RarityBreakdown `json:"rarity_breakdown"`
	PriceQuartiles  PriceQuartiles  `json:"price_quartiles"`
	ThisWeek        WeekStats       `json:"this_week"`
}
