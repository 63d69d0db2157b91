package recorder

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Catskill909/radio-sub001/api/types"
)

// Status reports the recorder loop's in-flight captures
// @Summary Recorder status
// @Tags recorder
// @Produce json
// @Success 200 {object} recorder.Status
// @Failure 503 {object} types.ErrorResponse "Recorder not running"
// @Router /api/v1/recorder/status [get]
func Status(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.Recorder == nil {
			c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{Error: "Recorder is not running"})
			return
		}
		types.SendSuccess(c, deps.Recorder.Status())
	}
}
