package models

// WatchlistEntry is one saved (user, property) pair. The pair is unique per
// user; add and remove are both idempotent.
type WatchlistEntry struct {
	ID         int64     `json:"id" db:"id"`
	UserID     string    `json:"-" db:"user_id"`
	PropertyID int64     `json:"propertyId" db:"property_id"`
	AddedAt    string    `json:"addedAt" db:"added_at"`
	Notes      string    `json:"notes,omitempty" db:"notes"`
	Property   *Property `json:"property,omitempty"`
}

// WatchlistAddRequest adds a property to the caller's watchlist.
type WatchlistAddRequest struct {
	PropertyID int64  `json:"property_id" binding:"required"`
	Notes      string `json:"notes"`
}

// WatchlistState confirms current membership after an add or remove.
type WatchlistState struct {
	PropertyID int64 `json:"property_id"`
	Watching   bool  `json:"watching"`
}
