package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scoutalina/scout-backend-go/internal/middleware"
	"github.com/scoutalina/scout-backend-go/internal/models"
	"github.com/scoutalina/scout-backend-go/internal/service"
	"github.com/scoutalina/scout-backend-go/pkg/response"
)

// RouteHandler handles HTTP requests for route ingestion and listing
type RouteHandler struct {
	routeService *service.RouteService
}

// NewRouteHandler creates a new route handler
func NewRouteHandler(routeService *service.RouteService) *RouteHandler {
	return &RouteHandler{routeService: routeService}
}

// Upload handles POST /api/v1/routes
func (h *RouteHandler) Upload(c *gin.Context) {
	var req models.RouteUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.routeService.Upload(middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.Replayed {
		response.Success(c, result)
		return
	}
	response.Created(c, result)
}

// List handles GET /api/v1/routes
func (h *RouteHandler) List(c *gin.Context) {
	var filter models.RouteListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	summaries, err := h.routeService.List(middleware.UserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"routes": summaries,
		"count":  len(summaries),
	})
}

// Get handles GET /api/v1/routes/:id
func (h *RouteHandler) Get(c *gin.Context) {
	routeID, err := parseID(c, "id")
	if err != nil {
		response.BadRequest(c, "Invalid route ID")
		return
	}

	route, err := h.routeService.Get(middleware.UserID(c), routeID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, route)
}

func parseID(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
