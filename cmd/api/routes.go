package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inmueblesv-catalog/internal/middleware"
	"inmueblesv-catalog/pkg/cache"
	"inmueblesv-catalog/pkg/database"
	"inmueblesv-catalog/pkg/logger"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.setupHealthCheck()
	a.setupMetricsEndpoint()
	a.setupAPIRoutes()
}

// setupMetricsEndpoint exposes Prometheus metrics
func (a *App) setupMetricsEndpoint() {
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// setupHealthCheck configures health check endpoint
func (a *App) setupHealthCheck() {
	a.Router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := database.MongoClient.Ping(ctx, nil); err != nil {
			logger.GlobalLogger.Printf("MongoDB ping failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "MongoDB unavailable"})
			return
		}

		if _, err := cache.RedisClient.Ping(ctx).Result(); err != nil {
			logger.GlobalLogger.Printf("Redis ping failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "Redis unavailable"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	api := a.Router.Group("/api")
	{
		// Public routes
		api.POST("/register", a.UserHandler.Register)
		api.POST("/login", a.UserHandler.Login)
		api.GET("/properties", a.PropertyHandler.GetProperties)
		api.GET("/properties/featured", a.PropertyHandler.GetFeatured)
		api.GET("/properties/:id", a.PropertyHandler.GetPropertyByID)
		api.GET("/reviews", a.ReviewHandler.GetReviews)
		api.POST("/leads", a.LeadHandler.SubmitLead)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.Config.JWT.Secret))
		{
			protected.GET("/session", a.UserHandler.Session)
			protected.GET("/favorites", a.FavoriteHandler.GetFavorites)
			protected.POST("/favorites", a.FavoriteHandler.ToggleFavorite)
			protected.POST("/reviews", a.ReviewHandler.SubmitReview)
			protected.DELETE("/reviews/:id", a.ReviewHandler.DeleteReview)
			protected.POST("/properties", a.PropertyHandler.CreateProperty)
		}
	}
}
