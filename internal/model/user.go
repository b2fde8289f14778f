// Package model holds the gorm entities persisted by the API
package model

import "time"

// User is the only entity with lifecycle state: it starts unverified
// with a fresh verification code and flips to verified exactly once.
// EmailVerified == true implies VerificationCode == nil
type User struct {
	ID               string  `gorm:"primaryKey" json:"id"`
	FirstName        string  `gorm:"not null" json:"firstName"`
	LastName         string  `gorm:"not null" json:"lastName"`
	Role             string  `gorm:"not null" json:"role"`
	CompanyName      string  `gorm:"not null" json:"companyName"`
	CompanyEmail     string  `gorm:"unique;not null" json:"companyEmail"`
	PhoneNumber      string  `gorm:"unique;not null" json:"phoneNumber"`
	PasswordHash     string  `gorm:"not null" json:"-"`
	VerificationCode *string `json:"-"`
	EmailVerified    bool    `gorm:"default:false" json:"emailVerified"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
