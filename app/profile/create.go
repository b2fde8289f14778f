// Package profile manages the factory profile a user attaches to their
// account, one per user
package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"revas/exchange-api/internal"
	"revas/exchange-api/internal/model"
	"revas/exchange-api/pkg/apperr"
)

type createBody struct {
	CountryID       string  `json:"countryId"`
	StateID         string  `json:"stateId"`
	FactoryCapacity float64 `json:"factoryCapacity"`
	Products        string  `json:"products"`
}

func Create(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data createBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.CountryID == "" || data.StateID == "" || data.Products == "" || data.FactoryCapacity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   "countryId, stateId, products and a positive factoryCapacity are required",
			"requestID": requestID,
		})
		return
	}

	p := model.Profile{
		ID:              uuid.NewString(),
		UserID:          userID,
		CountryID:       data.CountryID,
		StateID:         data.StateID,
		FactoryCapacity: data.FactoryCapacity,
		Products:        data.Products,
	}

	if err := d.DB.Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     apperr.Kind(apperr.ErrConflict),
				"message":   "Profile already exists",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create profile", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, p)
}
