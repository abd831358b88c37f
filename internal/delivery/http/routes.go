package http

import (
	"github.com/gin-gonic/gin"

	"github.com/nutriguide/backend/config"
	"github.com/nutriguide/backend/internal/logger"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, log *logger.Logger, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware(log))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		survey := v1.Group("/survey")
		{
			survey.POST("/submit", handler.SubmitSurvey)
		}

		v1.GET("/recommendations/:userID", handler.GetRecommendations)

		admin := v1.Group("/admin")
		{
			admin.GET("/stats/recommendations", handler.RecommendationStats)
			admin.GET("/users/recent", handler.RecentUsers)
			admin.GET("/users/count", handler.CountUsers)
			admin.DELETE("/users/:userID", handler.DeleteUser)
		}
	}

	return router
}
