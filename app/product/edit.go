package product

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"revas/exchange-api/internal"
	"revas/exchange-api/internal/model"
	"revas/exchange-api/pkg/apperr"
)

type editBody struct {
	Volume        *string  `json:"volume"`
	Duration      *string  `json:"duration"`
	Price         *float64 `json:"price"`
	Destination   *string  `json:"destination"`
	PaymentTerms  *string  `json:"paymentTerms"`
	ShippingTerms *string  `json:"shippingTerms"`
	Location      *string  `json:"location"`
}

// Edit partially updates a listing. Only the owner may touch it
func Edit(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	productID := c.Query("product_id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   "product_id is required",
			"requestID": requestID,
		})
		return
	}

	var data editBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	var p model.Product
	err := d.DB.Where("id = ?", productID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     apperr.Kind(apperr.ErrNotFound),
				"message":   "Product not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch product", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if p.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     apperr.Kind(apperr.ErrForbidden),
			"message":   "You don't own this product",
			"requestID": requestID,
		})
		return
	}

	updates := map[string]any{}
	if data.Volume != nil {
		updates["volume"] = *data.Volume
	}
	if data.Duration != nil {
		updates["duration"] = *data.Duration
	}
	if data.Price != nil {
		updates["price"] = *data.Price
	}
	if data.Destination != nil {
		updates["destination"] = *data.Destination
	}
	if data.PaymentTerms != nil {
		updates["payment_terms"] = *data.PaymentTerms
	}
	if data.ShippingTerms != nil {
		updates["shipping_terms"] = *data.ShippingTerms
	}
	if data.Location != nil {
		updates["location"] = *data.Location
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   "No fields to update",
			"requestID": requestID,
		})
		return
	}

	if err := d.DB.Model(&p).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update product", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, p)
}
