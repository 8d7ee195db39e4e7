package main

import (
	"fmt"
	"log"
	"os"

	"batterydesign/internal/api/handlers"
	"batterydesign/internal/api/middleware"
	"batterydesign/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	cfg := config.Default()
	if path := os.Getenv("DESIGN_CONFIG"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("loading %s: %v", path, err)
		}
		cfg = loaded
	}

	designsHandler := handlers.NewDesignsHandler(cfg)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.POST("/designs", designsHandler.RunDesign)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting design API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
