package models

// Property represents an already-enriched real-estate record from the
// external catalog. The matcher only reads the coordinate and the attribute
// bag; it never writes property rows.
type Property struct {
	ID           int64   `json:"id" db:"id"`
	ExternalID   string  `json:"externalId,omitempty" db:"external_id"`
	Address      string  `json:"address" db:"address"`
	City         string  `json:"city" db:"city"`
	State        string  `json:"state" db:"state"`
	Zip          string  `json:"zip" db:"zip"`
	Latitude     float64 `json:"lat" db:"latitude"`
	Longitude    float64 `json:"lon" db:"longitude"`
	Price        float64 `json:"price" db:"price"`
	Bedrooms     int     `json:"bedrooms" db:"bedrooms"`
	Bathrooms    float64 `json:"bathrooms" db:"bathrooms"`
	Sqft         int     `json:"sqft" db:"sqft"`
	LotSqft      int     `json:"lotSqft" db:"lot_sqft"`
	YearBuilt    int     `json:"yearBuilt" db:"year_built"`
	PropertyType string  `json:"propertyType" db:"property_type"`
	PhotoURL     string  `json:"photoUrl,omitempty" db:"photo_url"`
	Source       string  `json:"source,omitempty" db:"source"` // ATTOM or Estated
	LastUpdated  string  `json:"lastUpdated" db:"last_updated"`
}

// PropertyUpsertRequest is the catalog-sync payload sent by the enrichment
// collaborator. Coordinates are required; everything else is attribute data.
type PropertyUpsertRequest struct {
	ExternalID   string   `json:"external_id" binding:"required"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Zip          string   `json:"zip"`
	Lat          *float64 `json:"lat"`
	Lon          *float64 `json:"lon"`
	Price        float64  `json:"price"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    float64  `json:"bathrooms"`
	Sqft         int      `json:"sqft"`
	LotSqft      int      `json:"lot_sqft"`
	YearBuilt    int      `json:"year_built"`
	PropertyType string   `json:"property_type"`
	PhotoURL     string   `json:"photo_url"`
	Source       string   `json:"source"`
}
