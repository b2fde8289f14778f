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
)

type verifyBody struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// VerifyEmail consumes a one-time code. A missing user and a wrong code
// look identical to the caller so the endpoint can't be used to probe
// for registered emails
func VerifyEmail(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data verifyBody
	if err := c.ShouldBind(&data); err != nil || data.Email == "" || data.Code == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   "email and code are required",
			"requestID": requestID,
		})
		return
	}

	var user model.User
	err := d.DB.Where("company_email = ?", strings.ToLower(data.Email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":     apperr.Kind(apperr.ErrInvalidCode),
				"message":   "Invalid verification code",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if user.VerificationCode == nil || *user.VerificationCode != data.Code {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":     apperr.Kind(apperr.ErrInvalidCode),
			"message":   "Invalid verification code",
			"requestID": requestID,
		})
		return
	}

	err = d.DB.Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"email_verified":    true,
			"verification_code": nil,
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to mark user verified", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Status(http.StatusNoContent)
}
