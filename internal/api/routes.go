package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/example/mistermo/internal/core"
)

// SetupRoutes configures all the application routes with their handlers.
// Global middleware (logging, recovery, CORS, metrics) is expected to be
// applied to the router before this is called.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	metricsHandler http.Handler,
	userService core.UserService,
	progressService core.ProgressService,
	onboardingService core.OnboardingService,
) {
	authHandler := NewAuthHandler(userService, logger)
	userHandler := NewUserHandler(userService, logger)
	progressHandler := NewProgressHandler(progressService, logger)
	onboardingHandler := NewOnboardingHandler(onboardingService, logger)

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/health", Health)

		apiGroup.POST("/auth/telegram", authHandler.AuthenticateTelegram)

		progressGroup := apiGroup.Group("/progress")
		{
			progressGroup.GET("/today", progressHandler.GetToday)
			progressGroup.POST("/update", progressHandler.UpdateToday)
		}

		userGroup := apiGroup.Group("/user")
		{
			userGroup.GET("/state", userHandler.GetState)
			userGroup.POST("/state", userHandler.SetState)
		}

		apiGroup.POST("/onboarding/save", onboardingHandler.Save)
	}

	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	logger.Info("API routes configured under /api")
}
