package health

import (
	"github.com/gin-gonic/gin"

	"github.com/Catskill909/radio-sub001/api/types"
)

// RegisterRoutes registers health check routes
func RegisterRoutes(router *gin.Engine, deps *types.Dependencies) {
	router.GET("/health", Get(deps))
}
