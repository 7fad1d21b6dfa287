package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/scoutalina/scout-backend-go/internal/api"
	"github.com/scoutalina/scout-backend-go/internal/config"
	"github.com/scoutalina/scout-backend-go/internal/database"
	"github.com/scoutalina/scout-backend-go/internal/spatial"
)

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	index := spatial.NewGrid(cfg.GridCellM)
	services := api.Wire(db, index, cfg)

	// Build the spatial index from the property catalog before serving so
	// match queries never silently run against an empty index.
	if err := services.Properties.WarmBuild(); err != nil {
		log.Fatal("Failed to build spatial index:", err)
	}

	router := api.SetupRouter(cfg, services)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
