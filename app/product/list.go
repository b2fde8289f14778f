package product

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"revas/exchange-api/internal"
	"revas/exchange-api/internal/model"
	"revas/exchange-api/pkg/apperr"
)

func ListAll(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var products []model.Product
	err := d.DB.Order("created_at desc").Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list products", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, products)
}
