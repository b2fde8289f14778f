package product

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"revas/exchange-api/internal"
	"revas/exchange-api/internal/model"
	"revas/exchange-api/pkg/apperr"
)

// Catalog lists the reference table of known product names. The table
// is seeded externally and only ever read here
func Catalog(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var catalog []model.CatalogProduct
	err := d.DB.Order("name asc").Find(&catalog).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list catalog", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, catalog)
}
