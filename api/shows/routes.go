package shows

import (
	"github.com/gin-gonic/gin"

	"github.com/Catskill909/radio-sub001/api/types"
)

// RegisterRoutes registers show management routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("", CreateShow(deps))
	router.GET("", ListShows(deps))
	router.GET("/:id", GetShow(deps))
	router.PUT("/:id", UpdateShow(deps))
	router.DELETE("/:id", DeleteShow(deps))
}
