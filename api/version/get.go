package version

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Get handles version requests
func Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Radio Calendar API",
			"version":     "1.0.0",
			"description": "Broadcast calendar and automated stream recording",
			"status":      "running",
		})
	}
}
