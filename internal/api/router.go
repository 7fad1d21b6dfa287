package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/scoutalina/scout-backend-go/internal/config"
	"github.com/scoutalina/scout-backend-go/internal/handler"
	"github.com/scoutalina/scout-backend-go/internal/middleware"
	"github.com/scoutalina/scout-backend-go/internal/repository"
	"github.com/scoutalina/scout-backend-go/internal/service"
	"github.com/scoutalina/scout-backend-go/internal/spatial"
)

// Services bundles the wired service layer so main can run the index warm
// build before serving.
type Services struct {
	Routes     *service.RouteService
	Matches    *service.MatchService
	Properties *service.PropertyService
	Watchlist  *service.WatchlistService
	Stats      *service.StatsService
}

// Wire constructs repositories and services over the database and index.
func Wire(db *sql.DB, index *spatial.Grid, cfg *config.Config) *Services {
	routeRepo := repository.NewRouteRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	thresholds := service.RarityThresholds{
		Rare:      cfg.RarityRare,
		Epic:      cfg.RarityEpic,
		Legendary: cfg.RarityLegendary,
	}

	return &Services{
		Routes:     service.NewRouteService(routeRepo),
		Matches:    service.NewMatchService(routeRepo, propertyRepo, matchRepo, watchlistRepo, index, cfg.MatchBufferM, thresholds),
		Properties: service.NewPropertyService(propertyRepo, index),
		Watchlist:  service.NewWatchlistService(watchlistRepo, propertyRepo),
		Stats:      service.NewStatsService(statsRepo),
	}
}

// SetupRouter builds the gin engine with middleware and all API routes.
func SetupRouter(cfg *config.Config, svc *Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS for the dashboard
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	routeHandler := handler.NewRouteHandler(svc.Routes)
	matchHandler := handler.NewMatchHandler(svc.Matches)
	propertyHandler := handler.NewPropertyHandler(svc.Properties)
	watchlistHandler := handler.NewWatchlistHandler(svc.Watchlist)
	statsHandler := handler.NewStatsHandler(svc.Stats, svc.Properties)

	r.GET("/health", statsHandler.Health)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
	api.Use(middleware.Auth(cfg.JWTSecret))
	{
		routes := api.Group("/routes")
		{
			routes.POST("", routeHandler.Upload)
			routes.GET("", routeHandler.List)
			routes.GET("/:id", routeHandler.Get)
			routes.POST("/:id/match", matchHandler.Rematch)
			routes.GET("/:id/properties", matchHandler.Properties)
		}

		api.GET("/properties/:id", propertyHandler.Get)

		watchlist := api.Group("/watchlist")
		{
			watchlist.POST("", watchlistHandler.Add)
			watchlist.DELETE("/:property_id", watchlistHandler.Remove)
			watchlist.GET("", watchlistHandler.List)
		}

		api.GET("/stats", statsHandler.Summary)

		// Catalog sync from the enrichment collaborator
		api.POST("/internal/properties", propertyHandler.Upsert)
	}

	return r
}
