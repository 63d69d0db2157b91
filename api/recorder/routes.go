package recorder

import (
	"github.com/gin-gonic/gin"

	"github.com/Catskill909/radio-sub001/api/types"
)

// RegisterRoutes registers recorder status routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("/status", Status(deps))
}
