// Package location serves the country and state reference data
package location

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"revas/exchange-api/internal"
	"revas/exchange-api/internal/model"
	"revas/exchange-api/pkg/apperr"
)

func Countries(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var countries []model.Country
	err := d.DB.Order("name asc").Find(&countries).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list countries", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, countries)
}
