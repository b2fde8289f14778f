// Package waitlist takes signups from companies waiting for access to
// the exchange
package waitlist

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"revas/exchange-api/internal"
	"revas/exchange-api/internal/model"
	"revas/exchange-api/pkg/apperr"
	"revas/exchange-api/pkg/validators"
)

type createBody struct {
	WorkEmail string `json:"workEmail"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	CountryID string `json:"countryId"`
	StateID   string `json:"stateId"`
}

func Create(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data createBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.EmailValidator(data.WorkEmail); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   err.Error(),
			"requestID": requestID,
		})
		return
	}

	if data.FirstName == "" || data.LastName == "" || data.CountryID == "" || data.StateID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   "firstName, lastName, countryId and stateId are required",
			"requestID": requestID,
		})
		return
	}

	entry := model.WaitlistEntry{
		ID:        uuid.NewString(),
		WorkEmail: strings.ToLower(data.WorkEmail),
		FirstName: data.FirstName,
		LastName:  data.LastName,
		CountryID: data.CountryID,
		StateID:   data.StateID,
	}

	if err := d.DB.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     apperr.Kind(apperr.ErrEmailConflict),
				"message":   "Email already waitlisted",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create waitlist entry", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Row is committed, a bounced welcome mail is reported but nothing
	// is rolled back
	if err := d.Mailer.SendWaitlistEmail(entry.WorkEmail, entry.LastName); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     apperr.Kind(apperr.ErrDeliveryFailure),
			"message":   "Waitlisted but the confirmation mail could not be sent",
			"requestID": requestID,
		})

		zap.L().Error("Failed to send waitlist email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, entry)
}
