package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sunside/sunside-backend-go/internal/config"
	"github.com/sunside/sunside-backend-go/internal/handler"
	"github.com/sunside/sunside-backend-go/internal/metrics"
	"github.com/sunside/sunside-backend-go/internal/middleware"
)

// SetupRouter wires middleware and routes
func SetupRouter(cfg *config.Config, analysisHandler *handler.AnalysisHandler, collector *metrics.Collector) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS middleware
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

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Route sun exposure API is running",
		})
	})

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(collector.Handler()))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(120, time.Minute))
	{
		analyses := api.Group("/analyses")
		{
			analyses.GET("", analysisHandler.List)
			analyses.GET("/:id", analysisHandler.GetByID)
			analyses.POST("/preview", analysisHandler.Preview)

			analyses.POST("", middleware.RequireJWT(cfg.JWTSecret), analysisHandler.Create)
			analyses.DELETE("/:id", middleware.RequireJWT(cfg.JWTSecret), analysisHandler.Delete)
		}

		sun := api.Group("/sun")
		{
			sun.GET("/position", analysisHandler.SunPosition)
		}
	}

	return r
}
