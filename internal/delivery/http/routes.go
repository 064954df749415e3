package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/recipelift/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		recipes := v1.Group("/recipes")
		{
			recipes.POST("/import", handler.ImportRecipe)
			recipes.POST("/classify", handler.ClassifyRecipe)
		}

		ingredients := v1.Group("/ingredients")
		{
			ingredients.POST("/normalize", handler.NormalizeIngredients)
			ingredients.POST("/match", handler.MatchIngredients)
		}
	}

	return router
}
