package recordings

import (
	"github.com/gin-gonic/gin"

	"github.com/Catskill909/radio-sub001/api/types"
)

// RegisterRoutes registers recording archive routes. The mutation
// endpoints share the group's rate limiting with the read endpoints;
// the per-file in-flight lock below the handlers is what actually
// serializes edits.
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	router.GET("", ListRecordings(deps))
	router.GET("/:id", GetRecording(deps))
	router.DELETE("/:id", DeleteRecording(deps))
	router.GET("/:id/download", DownloadRecording(deps))

	// Destructive audio edits
	router.POST("/:id/trim", TrimRecording(deps))
	router.POST("/:id/fade", FadeRecording(deps))
	router.POST("/:id/normalize", NormalizeRecording(deps))
}
