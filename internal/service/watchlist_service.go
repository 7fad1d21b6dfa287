package service

import (
	"github.com/scoutalina/scout-backend-go/internal/apperr"
	"github.com/scoutalina/scout-backend-go/internal/models"
	"github.com/scoutalina/scout-backend-go/internal/repository"
)

// WatchlistService manages the per-user idempotent set of saved properties.
type WatchlistService struct {
	watchlist  *repository.WatchlistRepository
	properties *repository.PropertyRepository
}

// NewWatchlistService creates a new watchlist service
func NewWatchlistService(watchlist *repository.WatchlistRepository, properties *repository.PropertyRepository) *WatchlistService {
	return &WatchlistService{watchlist: watchlist, properties: properties}
}

// Add saves a property for the user. Adding an already-saved property is a
// no-op (notes are refreshed when provided), never an error.
func (s *WatchlistService) Add(userID string, req models.WatchlistAddRequest) (*models.WatchlistState, error) {
	prop, err := s.properties.GetByID(req.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, apperr.NotFound("property", req.PropertyID)
	}

	if err := s.watchlist.Add(userID, req.PropertyID, req.Notes); err != nil {
		return nil, err
	}

	return &models.WatchlistState{PropertyID: req.PropertyID, Watching: true}, nil
}

// Remove drops a property from the user's watchlist. Removing a property
// that is not saved is a no-op, never an error.
func (s *WatchlistService) Remove(userID string, propertyID int64) (*models.WatchlistState, error) {
	if err := s.watchlist.Remove(userID, propertyID); err != nil {
		return nil, err
	}
	return &models.WatchlistState{PropertyID: propertyID, Watching: false}, nil
}

// List returns the user's saved properties in stable insertion order.
func (s *WatchlistService) List(userID string) ([]models.WatchlistEntry, error) {
	return s.watchlist.List(userID)
}
