package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Logout clears the token cookies. Tokens are stateless so there is
// nothing to revoke server-side and the operation never fails
func Logout(c *gin.Context) {
	clearAuthCookies(c)

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}
