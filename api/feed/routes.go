package feed

import (
	"github.com/gin-gonic/gin"

	"github.com/Catskill909/radio-sub001/api/types"
)

// RegisterRoutes registers the public feed route
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", Get(deps))
}
