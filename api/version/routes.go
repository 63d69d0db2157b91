package version

import (
	"github.com/gin-gonic/gin"

	"github.com/Catskill909/radio-sub001/api/types"
)

// RegisterRoutes registers version routes
func RegisterRoutes(router *gin.Engine, _ *types.Dependencies) {
	router.GET("/version", Get())
}
