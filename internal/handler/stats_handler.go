package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scoutalina/scout-backend-go/internal/middleware"
	"github.com/scoutalina/scout-backend-go/internal/service"
	"github.com/scoutalina/scout-backend-go/pkg/response"
)

// StatsHandler handles the dashboard aggregate endpoint and health checks
type StatsHandler struct {
	statsService    *service.StatsService
	propertyService *service.PropertyService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService, propertyService *service.PropertyService) *StatsHandler {
	return &StatsHandler{statsService: statsService, propertyService: propertyService}
}

// Summary handles GET /api/v1/stats
func (h *StatsHandler) Summary(c *gin.Context) {
	summary, err := h.statsService.Summary(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, summary)
}

// Health handles GET /health
func (h *StatsHandler) Health(c *gin.Context) {
	dbOK := h.statsService.Healthy() == nil
	indexOK := h.propertyService.IndexReady()

	status := http.StatusOK
	overall := "ok"
	if !dbOK || !indexOK {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}
	db := "connected"
	if !dbOK {
		db = "unavailable"
	}
	index := "ready"
	if !indexOK {
		index = "building"
	}

	c.JSON(status, gin.H{
		"status": overall,
		"db":     db,
		"index":  index,
	})
}
