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

type resendBody struct {
	Email string `json:"email"`
}

// ResendCode replaces the stored verification code with a fresh one and
// mails it out. Only the latest code verifies
func ResendCode(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data resendBody
	if err := c.ShouldBind(&data); err != nil || data.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   "email is required",
			"requestID": requestID,
		})
		return
	}

	var user model.User
	err := d.DB.Where("company_email = ?", strings.ToLower(data.Email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     apperr.Kind(apperr.ErrUserNotFound),
				"message":   "User does not exist",
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

	// A verified user holds no code and never gets one again
	if user.EmailVerified {
		c.JSON(http.StatusConflict, gin.H{
			"error":     apperr.Kind(apperr.ErrConflict),
			"message":   "Email is already verified",
			"requestID": requestID,
		})
		return
	}

	code, err := security.GenerateOTP()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate verification code", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = d.DB.Model(&model.User{}).
		Where("id = ?", user.ID).
		Update("verification_code", code).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store new verification code", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := d.Mailer.SendVerificationEmail(user.CompanyEmail, user.LastName, code); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     apperr.Kind(apperr.ErrDeliveryFailure),
			"message":   "New code stored but the mail could not be sent. Try again",
			"requestID": requestID,
		})

		zap.L().Error("Failed to send verification email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Status(http.StatusNoContent)
}
