package location

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"revas/exchange-api/internal"
	"revas/exchange-api/internal/model"
	"revas/exchange-api/pkg/apperr"
)

func States(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	countryID := c.Query("country_id")
	if countryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   "country_id is required",
			"requestID": requestID,
		})
		return
	}

	var states []model.State
	err := d.DB.Where("country_id = ?", countryID).Order("name asc").Find(&states).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list states", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, states)
}
