package model

import "time"

type WaitlistEntry struct {
	ID        string `gorm:"primaryKey" json:"id"`
	WorkEmail string `gorm:"unique;not null" json:"workEmail"`
	FirstName string `gorm:"not null" json:"firstName"`
	LastName  string `gorm:"not null" json:"lastName"`
	CountryID string `gorm:"not null" json:"countryId"`
	StateID   string `gorm:"not null" json:"stateId"`

	CreatedAt time.Time `json:"createdAt"`
}
