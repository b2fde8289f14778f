// Package product manages the listings sellers put up on the exchange
// plus the read-only catalog of known product names
package product

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"revas/exchange-api/internal"
	"revas/exchange-api/internal/model"
	"revas/exchange-api/pkg/apperr"
)

type createBody struct {
	Volume        string  `json:"volume"`
	Duration      string  `json:"duration"`
	Price         float64 `json:"price"`
	Destination   string  `json:"destination"`
	PaymentTerms  string  `json:"paymentTerms"`
	ShippingTerms string  `json:"shippingTerms"`
	Location      string  `json:"location"`
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

	if data.Volume == "" || data.Duration == "" || data.Price <= 0 ||
		data.Destination == "" || data.PaymentTerms == "" || data.ShippingTerms == "" || data.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     apperr.Kind(apperr.ErrValidation),
			"message":   "All listing fields are required and price must be positive",
			"requestID": requestID,
		})
		return
	}

	p := model.Product{
		ID:            uuid.NewString(),
		UserID:        userID,
		Volume:        data.Volume,
		Duration:      data.Duration,
		Price:         data.Price,
		Destination:   data.Destination,
		PaymentTerms:  data.PaymentTerms,
		ShippingTerms: data.ShippingTerms,
		Location:      data.Location,
	}

	if err := d.DB.Create(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     apperr.Kind(apperr.ErrPersistenceFailure),
			"message":   "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create product", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, p)
}
