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

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks the credentials and hands back an access/refresh pair as
// cookies. Unknown email and wrong password produce the exact same
// response so the endpoint can't be used to enumerate accounts.
// Unverified users may log in, protected routes still require a
// verified account
func Login(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil || data.Email == "" || data.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   "email and password are required",
			"requestID": requestID,
		})
		return
	}

	var user model.User
	err := d.DB.Where("company_email = ?", strings.ToLower(data.Email)).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// An unknown email and a wrong password take the same exit
	if err != nil || !d.Argon.VerifyPasswd(data.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     apperr.Kind(apperr.ErrInvalidCredentials),
			"message":   "Invalid email or password",
			"requestID": requestID,
		})
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

	refresh, err := d.Tokens.Issue(user.ID, security.TokenRefresh)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to issue refresh token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	setAuthCookies(c, access, refresh)

	c.JSON(http.StatusAccepted, gin.H{
		"userID":        user.ID,
		"emailVerified": user.EmailVerified,
	})
}
