// Package root holds the unauthenticated liveness endpoints load
// balancers and uptime monitors poll
package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Heartbeat answers HEAD probes with an empty 200
func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Check answers GET probes with a small JSON body
func Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
