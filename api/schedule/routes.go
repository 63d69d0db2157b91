package schedule

import (
	"github.com/gin-gonic/gin"

	"github.com/Catskill909/radio-sub001/api/types"
)

// RegisterRoutes registers calendar routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.POST("/slots", CreateSlot(deps))
	router.POST("/slots/recurring", CreateRecurringSlots(deps))
	router.GET("/slots", ListSlots(deps))
	router.GET("/slots/:id", GetSlot(deps))
	router.DELETE("/slots/:id", DeleteSlot(deps))
	router.GET("/on-air", OnAir(deps))
	router.POST("/purge-corrupt", PurgeCorrupt(deps))
}
