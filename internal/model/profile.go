package model

import "time"

// Profile holds the factory metadata a user fills in after signup.
// One per user, enforced by the unique index on UserID
type Profile struct {
	ID              string  `gorm:"primaryKey" json:"id"`
	UserID          string  `gorm:"unique;not null" json:"userId"`
	CountryID       string  `gorm:"not null" json:"countryId"`
	StateID         string  `gorm:"not null" json:"stateId"`
	FactoryCapacity float64 `gorm:"not null" json:"factoryCapacity"`
	Products        string  `gorm:"not null" json:"products"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
