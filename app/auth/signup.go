// Package auth implements the account lifecycle: signup, email
// verification, resend, login, token refresh and logout
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"revas/exchange-api/internal"
	"revas/exchange-api/internal/model"
	"revas/exchange-api/pkg/apperr"
	"revas/exchange-api/pkg/security"
	"revas/exchange-api/pkg/validators"
)

const userIDCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type signupBody struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Role        string `json:"role"`
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

func Signup(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data signupBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	if err := validators.PhoneValidator(data.PhoneNumber); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	if data.FirstName == "" || data.LastName == "" || data.Role == "" || data.CompanyName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   "firstName, lastName, role and companyName are required",
			"requestID": requestID,
		})
		return
	}

	email := strings.ToLower(data.Email)

	// Early conflict check for a friendly error. The unique index on the
	// email column is what actually guarantees uniqueness under races
	var found bool
	r := d.DB.Model(&model.User{}).
		Select("count(*) > 0").
		Where("company_email = ?", email).
		Find(&found)
	if r.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if user is registered", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	if found {
		c.JSON(http.StatusConflict, gin.H{
			"error":     apperr.Kind(apperr.ErrEmailConflict),
			"message":   "This email is already registered. Please login or use a different email",
			"requestID": requestID,
		})
		return
	}

	hash, err := d.Argon.GenerateFromPassword(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	userID, err := gonanoid.Generate(userIDCharset, 16)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate user ID", zap.Error(err), zap.String("requestID", requestID))
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

	user := model.User{
		ID:               userID,
		FirstName:        data.FirstName,
		LastName:         data.LastName,
		Role:             data.Role,
		CompanyName:      data.CompanyName,
		CompanyEmail:     email,
		PhoneNumber:      data.PhoneNumber,
		PasswordHash:     hash,
		VerificationCode: &code,
	}

	if err := d.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     apperr.Kind(apperr.ErrEmailConflict),
				"message":   "This email or phone number is already registered",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// The user row is committed at this point. If the mail bounces the
	// caller recovers through /resend-token, nothing is rolled back
	if err := d.Mailer.SendVerificationEmail(email, data.LastName, code); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     apperr.Kind(apperr.ErrDeliveryFailure),
			"message":   "Account created but the verification mail could not be sent. Use /resend-token to retry",
			"requestID": requestID,
		})

		zap.L().Error("Failed to send verification email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, user)
}
