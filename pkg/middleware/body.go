package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"revas/exchange-api/pkg/apperr"
)

// BodySizeLimiter caps request bodies at maxBytes. Requests that
// declare a larger Content-Length are rejected before any of the body
// is read; chunked bodies are cut off by MaxBytesReader and fail the
// handler's bind instead
func BodySizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":     apperr.Kind(apperr.ErrValidation),
				"message":   "Request body size exceeds limit",
				"requestID": c.MustGet("requestID").(string),
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
