package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"revas/exchange-api/internal/model"
	"revas/exchange-api/pkg/apperr"
	"revas/exchange-api/pkg/security"
)

// NewAuthMiddleware guards routes that need a logged in, verified user.
// The access token is read from the access_token cookie with an
// Authorization bearer header as fallback. On success userID is set in
// the gin context
func NewAuthMiddleware(d *gorm.DB, tokens *security.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		tokenStr, err := c.Cookie("access_token")
		if err != nil || tokenStr == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimPrefix(h, "Bearer ")
			}
		}

		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     apperr.Kind(apperr.ErrMalformedToken),
				"message":   "Missing access token. Please log in",
				"requestID": requestID,
			})
			return
		}

		sub, err := tokens.Verify(tokenStr, security.TokenAccess)
		if err != nil {
			c.AbortWithStatusJSON(apperr.Status(err), gin.H{
				"error":     apperr.Kind(err),
				"message":   "Authorization token rejected",
				"requestID": requestID,
			})
			return
		}

		// The token may outlive the account it was minted for
		var user model.User
		if err := d.Where("id = ?", sub).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     apperr.Kind(apperr.ErrUserNotFound),
					"message":   "Invalid user",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     apperr.Kind(apperr.ErrPersistenceFailure),
				"message":   "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if !user.EmailVerified {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     apperr.Kind(apperr.ErrForbidden),
				"message":   "Please verify your email before using the service",
				"requestID": requestID,
			})
			return
		}

		c.Set("userID", user.ID)
		c.Next()
	}
}
