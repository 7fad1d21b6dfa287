package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/scoutalina/scout-backend-go/internal/middleware"
	"github.com/scoutalina/scout-backend-go/internal/models"
	"github.com/scoutalina/scout-backend-go/internal/service"
	"github.com/scoutalina/scout-backend-go/pkg/response"
)

// WatchlistHandler handles HTTP requests for the user's saved properties
type WatchlistHandler struct {
	watchlistService *service.WatchlistService
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(watchlistService *service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{watchlistService: watchlistService}
}

// Add handles POST /api/v1/watchlist
func (h *WatchlistHandler) Add(c *gin.Context) {
	var req models.WatchlistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "property_id is required")
		return
	}

	state, err := h.watchlistService.Add(middleware.UserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, state)
}

// Remove handles DELETE /api/v1/watchlist/:property_id
func (h *WatchlistHandler) Remove(c *gin.Context) {
	propertyID, err := parseID(c, "property_id")
	if err != nil {
		response.BadRequest(c, "Invalid property ID")
		return
	}

	state, err := h.watchlistService.Remove(middleware.UserID(c), propertyID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, state)
}

// List handles GET /api/v1/watchlist
func (h *WatchlistHandler) List(c *gin.Context) {
	entries, err := h.watchlistService.List(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{
		"watchlist": entries,
		"count":     len(entries),
	})
}
