package service

import (
	"fmt"
	"log"

	"github.com/scoutalina/scout-backend-go/internal/apperr"
	"github.com/scoutalina/scout-backend-go/internal/models"
	"github.com/scoutalina/scout-backend-go/internal/repository"
	"github.com/scoutalina/scout-backend-go/internal/spatial"
)

// PropertyService keeps the stored catalog and the spatial index in step.
// The catalog content itself is owned by the enrichment collaborator.
type PropertyService struct {
	properties *repository.PropertyRepository
	index      *spatial.Grid
}

// NewPropertyService creates a new property service
func NewPropertyService(properties *repository.PropertyRepository, index *spatial.Grid) *PropertyService {
	return &PropertyService{properties: properties, index: index}
}

// WarmBuild loads every property coordinate and builds the spatial index.
// Until it completes, match queries report the index as unavailable.
func (s *PropertyService) WarmBuild() error {
	entries, err := s.properties.AllEntries()
	if err != nil {
		return fmt.Errorf("failed to load property catalog: %w", err)
	}

	s.index.Build(entries)
	log.Printf("Spatial index built: %d properties", len(entries))
	return nil
}

// Upsert stores an enriched property record and updates its index cell
// membership. A moved property is relocated under one index lock.
func (s *PropertyService) Upsert(req models.PropertyUpsertRequest) (*models.Property, error) {
	if req.ExternalID == "" {
		return nil, apperr.Validation("external_id is required")
	}
	if req.Lat == nil || req.Lon == nil {
		return nil, apperr.Validation("lat and lon are required")
	}
	if *req.Lat < -90 || *req.Lat > 90 || *req.Lon < -180 || *req.Lon > 180 {
		return nil, apperr.Validation("coordinates out of range")
	}

	prop := &models.Property{
		ExternalID:   req.ExternalID,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
		Latitude:     *req.Lat,
		Longitude:    *req.Lon,
		Price:        req.Price,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Sqft:         req.Sqft,
		LotSqft:      req.LotSqft,
		YearBuilt:    req.YearBuilt,
		PropertyType: req.PropertyType,
		PhotoURL:     req.PhotoURL,
		Source:       req.Source,
	}

	existed, oldLat, oldLon, err := s.properties.Upsert(prop)
	if err != nil {
		return nil, err
	}

	if existed {
		s.index.Move(prop.ID, oldLat, oldLon, prop.Latitude, prop.Longitude)
	} else {
		s.index.Insert(spatial.Entry{ID: prop.ID, Lat: prop.Latitude, Lon: prop.Longitude})
	}

	return prop, nil
}

// Get returns one property.
func (s *PropertyService) Get(id int64) (*models.Property, error) {
	prop, err := s.properties.GetByID(id)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, apperr.NotFound("property", id)
	}
	return prop, nil
}

// IndexReady reports whether the spatial index has been built.
func (s *PropertyService) IndexReady() bool {
	return s.index.Ready()
}
