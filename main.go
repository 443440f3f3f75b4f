package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foodie-api/config"
	"foodie-api/handlers"
	"foodie-api/logger"
	"foodie-api/orders"
	"foodie-api/routes"
	"foodie-api/store"
)

func main() {
	config.Init()
	logger.Initialize(config.LogEnv())
	defer logger.Log.Sync()

	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	db, err := config.Open(config.DefaultDSN)
	if err != nil {
		logger.Log.Fatal("Failed to open database", zap.Error(err))
	}

	// The store is built once here and injected everywhere; there is no
	// package-level instance.
	st := store.New(db)
	if err := st.Seed(); err != nil {
		logger.Log.Fatal("Failed to seed store", zap.Error(err))
	}
	manager := orders.NewManager(st, logger.Log)
	h := handlers.New(st, manager, logger.Log)

	r := gin.New()
	r.Use(logger.RequestLogger(), gin.Recovery())

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Foodie Order & Delivery API",
			"version": "1.0.0",
		})
	})

	routes.SetupRoutes(r, h)

	port := config.Port()
	logger.Log.Info("Server running", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.Log.Fatal("Failed to start server", zap.Error(err))
	}
}
