package feed

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Catskill909/radio-sub001/api/types"
)

// Get renders the station's published episodes as RSS
// @Summary Episode RSS feed
// @Tags feed
// @Produce application/rss+xml
// @Success 200 {string} string "RSS XML"
// @Failure 500 {object} types.ErrorResponse
// @Failure 503 {object} types.ErrorResponse
// @Router /api/v1/feed [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.FeedGenerator == nil {
			c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{Error: "Feed is not enabled"})
			return
		}
		xml, err := deps.FeedGenerator.Generate(c.Request.Context())
		if err != nil {
			types.SendInternalError(c, fmt.Sprintf("Failed to generate feed: %v", err))
			return
		}
		c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(xml))
	}
}
