package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health returns a liveness handler reporting the build version.
func Health(version string) gin.HandlerFunc {
	start := time.Now()
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": version,
			"uptime":  time.Since(start).Round(time.Second).String(),
		})
	}
}
