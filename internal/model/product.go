package model

import "time"

// Product is a single listing a seller puts up on the exchange
type Product struct {
	ID            string  `gorm:"primaryKey" json:"id"`
	UserID        string  `gorm:"index;not null" json:"userId"`
	Volume        string  `gorm:"not null" json:"volume"`
	Duration      string  `gorm:"not null" json:"duration"`
	Price         float64 `gorm:"not null" json:"price"`
	Destination   string  `gorm:"not null" json:"destination"`
	PaymentTerms  string  `gorm:"not null" json:"paymentTerms"`
	ShippingTerms string  `gorm:"not null" json:"shippingTerms"`
	Location      string  `gorm:"not null" json:"location"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CatalogProduct is a read-only reference row naming a product kind
// known to the exchange. Seeded externally
type CatalogProduct struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"unique;not null" json:"description"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
