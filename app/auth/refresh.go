package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"revas/exchange-api/internal"
	"revas/exchange-api/internal/model"
	"revas/exchange-api/pkg/apperr"
	"revas/exchange-api/pkg/security"
)

// RefreshToken mints a new access token from a valid refresh token. The
// token kind is checked, an access token is never accepted here
func RefreshToken(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	tokenStr, err := c.Cookie("refresh_token")
	if err != nil || tokenStr == "" {
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			tokenStr = strings.TrimPrefix(h, "Bearer ")
		}
	}

	if tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     apperr.Kind(apperr.ErrMalformedToken),
			"message":   "Missing refresh token. Please log in",
			"requestID": requestID,
		})
		return
	}

	sub, err := d.Tokens.Verify(tokenStr, security.TokenRefresh)
	if err != nil {
		c.JSON(apperr.Status(err), gin.H{
			"error":     apperr.Kind(err),
			"message":   "Refresh token rejected. Please log in again",
			"requestID": requestID,
		})
		return
	}

	// The subject has to still exist, tokens can outlive accounts
	var user model.User
	if err := d.DB.Where("id = ?", sub).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     apperr.Kind(apperr.ErrUserNotFound),
				"message":   "Invalid user",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	access, err := d.Tokens.Issue(user.ID, security.TokenAccess)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to issue access token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	setAuthCookies(c, access, "")

	c.JSON(http.StatusAccepted, gin.H{
		"accessToken": access,
	})
}
