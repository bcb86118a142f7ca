package main

import (
	"log"

	"github.com/sunside/sunside-backend-go/internal/api"
	"github.com/sunside/sunside-backend-go/internal/config"
	"github.com/sunside/sunside-backend-go/internal/database"
	"github.com/sunside/sunside-backend-go/internal/handler"
	"github.com/sunside/sunside-backend-go/internal/metrics"
	"github.com/sunside/sunside-backend-go/internal/repository"
	"github.com/sunside/sunside-backend-go/internal/routing"
	"github.com/sunside/sunside-backend-go/internal/service"
	"github.com/sunside/sunside-backend-go/internal/solar"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	var router *routing.Client
	if cfg.OSRMBaseURL != "" {
		router = routing.NewClient(cfg.OSRMBaseURL)
	} else {
		log.Println("OSRM_URL not set; analyses must provide a route path")
	}

	collector := metrics.NewCollector()

	analysisService := service.NewAnalysisService(
		repository.NewAnalysisRepository(db),
		solar.NewMeeusProvider(),
		router,
		collector,
		cfg.DefaultSampleCount,
	)
	analysisHandler := handler.NewAnalysisHandler(analysisService)

	engine := api.SetupRouter(cfg, analysisHandler, collector)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := engine.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
