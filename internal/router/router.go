package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/oxabz/time-tracker/internal/handler"
	"github.com/oxabz/time-tracker/internal/middleware"
	"github.com/oxabz/time-tracker/internal/service"
)

func New(
	authService *service.AuthService,
	authHandler *handler.AuthHandler,
	activityHandler *handler.ActivityHandler,
	logger zerolog.Logger,
	corsOrigins []string,
) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		gin.Recovery(),
		middleware.CORS(corsOrigins),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	activities := api.Group("/activities")
	activities.Use(middleware.Auth(authService))
	activities.POST("/start", activityHandler.Start)
	activities.POST("/stop", activityHandler.Stop)
	activities.GET("/current", activityHandler.Current)
	activities.GET("", activityHandler.List)
	activities.GET("/times", activityHandler.Times)
	activities.POST("/clear", activityHandler.Clear)
	activities.POST("/hard-clear", activityHandler.HardClear)
	activities.GET("/today", activityHandler.Today)
	activities.GET("/export", activityHandler.Export)

	return engine
}
