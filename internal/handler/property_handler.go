package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/scoutalina/scout-backend-go/internal/models"
	"github.com/scoutalina/scout-backend-go/internal/service"
	"github.com/scoutalina/scout-backend-go/pkg/response"
)

// PropertyHandler handles the catalog-sync endpoint used by the enrichment
// collaborator, plus single-property reads.
type PropertyHandler struct {
	propertyService *service.PropertyService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertyService *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// Upsert handles POST /api/v1/internal/properties
func (h *PropertyHandler) Upsert(c *gin.Context) {
	var req models.PropertyUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	prop, err := h.propertyService.Upsert(req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, prop)
}

// Get handles GET /api/v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.BadRequest(c, "Invalid property ID")
		return
	}

	prop, err := h.propertyService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, prop)
}
