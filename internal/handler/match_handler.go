package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/scoutalina/scout-backend-go/internal/middleware"
	"github.com/scoutalina/scout-backend-go/internal/service"
	"github.com/scoutalina/scout-backend-go/pkg/response"
)

// MatchHandler handles HTTP requests for route-property matching
type MatchHandler struct {
	matchService *service.MatchService
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchService *service.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// Rematch handles POST /api/v1/routes/:id/match
func (h *MatchHandler) Rematch(c *gin.Context) {
	routeID, err := parseID(c, "id")
	if err != nil {
		response.BadRequest(c, "Invalid route ID")
		return
	}

	result, err := h.matchService.Rematch(middleware.UserID(c), routeID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, result)
}

// Properties handles GET /api/v1/routes/:id/properties
func (h *MatchHandler) Properties(c *gin.Context) {
	routeID, err := parseID(c, "id")
	if err != nil {
		response.BadRequest(c, "Invalid route ID")
		return
	}

	result, err := h.matchService.StoredMatches(middleware.UserID(c), routeID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, result)
}
