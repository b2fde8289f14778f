package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"revas/exchange-api/internal"
	"revas/exchange-api/internal/model"
	"revas/exchange-api/pkg/apperr"
)

type editBody struct {
	CountryID       *string  `json:"countryId"`
	StateID         *string  `json:"stateId"`
	FactoryCapacity *float64 `json:"factoryCapacity"`
	Products        *string  `json:"products"`
}

// Edit applies a partial update to the caller's own profile. Absent
// fields are left untouched
func Edit(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data editBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	updates := map[string]any{}
	if data.CountryID != nil {
		updates["country_id"] = *data.CountryID
	}
	if data.StateID != nil {
		updates["state_id"] = *data.StateID
	}
	if data.FactoryCapacity != nil {
		updates["factory_capacity"] = *data.FactoryCapacity
	}
	if data.Products != nil {
		updates["products"] = *data.Products
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   "No fields to update",
			"requestID": requestID,
		})
		return
	}

	r := d.DB.Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if r.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update profile", zap.Error(r.Error), zap.String("requestID", requestID))
		return
	}

	if r.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     apperr.Kind(apperr.ErrNotFound),
			"message":   "Profile not found",
			"requestID": requestID,
		})
		return
	}

	var p model.Profile
	if err := d.DB.Where("user_id = ?", userID).First(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to reload profile", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, p)
}
