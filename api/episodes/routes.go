package episodes

import (
	"github.com/gin-gonic/gin"

	"github.com/Catskill909/radio-sub001/api/types"
)

// RegisterRoutes registers episode publishing routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", PublishEpisode(deps))
	router.GET("", ListEpisodes(deps))
	router.GET("/:id", GetEpisode(deps))
	router.PUT("/:id", UpdateEpisode(deps))
	router.DELETE("/:id", UnpublishEpisode(deps))
}
