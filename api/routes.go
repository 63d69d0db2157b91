package api

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Catskill909/radio-sub001/api/episodes"
	"github.com/Catskill909/radio-sub001/api/feed"
	"github.com/Catskill909/radio-sub001/api/health"
	"github.com/Catskill909/radio-sub001/api/recorder"
	"github.com/Catskill909/radio-sub001/api/recordings"
	"github.com/Catskill909/radio-sub001/api/schedule"
	"github.com/Catskill909/radio-sub001/api/settings"
	"github.com/Catskill909/radio-sub001/api/shows"
	"github.com/Catskill909/radio-sub001/api/types"
	"github.com/Catskill909/radio-sub001/api/version"
	_ "github.com/Catskill909/radio-sub001/docs/swagger"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) error {
	if deps == nil {
		return fmt.Errorf("handler dependencies are not set")
	}

	// Public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Swagger documentation
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.NoRoute(NotFoundHandler())

	v1 := engine.Group("/api/v1")

	// Calendar writes go through the conflict check, so keep their rate
	// modest (5 req/s, burst of 10)
	scheduleGroup := v1.Group("/schedule")
	scheduleGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 5, 10))
	schedule.RegisterRoutes(scheduleGroup, deps)

	// General management routes (10 req/s, burst of 20)
	settingsGroup := v1.Group("/settings")
	settingsGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	settings.RegisterRoutes(settingsGroup, deps)

	showGroup := v1.Group("/shows")
	showGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	shows.RegisterRoutes(showGroup, deps)

	episodeGroup := v1.Group("/episodes")
	episodeGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	episodes.RegisterRoutes(episodeGroup, deps)

	// Recording downloads can trigger repeated range requests from
	// players, so allow a higher rate (20 req/s, burst of 30)
	recordingGroup := v1.Group("/recordings")
	recordingGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 20, 30))
	recordings.RegisterRoutes(recordingGroup, deps)

	recorderGroup := v1.Group("/recorder")
	recorderGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	recorder.RegisterRoutes(recorderGroup, deps)

	// Feed readers poll aggressively; rate limit per client (10 req/s,
	// burst of 20)
	feedGroup := v1.Group("/feed")
	feedGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	feed.RegisterRoutes(feedGroup, deps)

	return nil
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
