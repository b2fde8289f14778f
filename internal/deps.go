package internal

import (
	"fmt"

	"gorm.io/gorm"

	"revas/exchange-api/db"
	"revas/exchange-api/internal/service"
	"revas/exchange-api/pkg/security"
)

type Deps struct {
	DB     *gorm.DB
	Argon  *security.ArgonHash
	Tokens *security.TokenIssuer
	Mailer service.Mailer
}

// NewDeps builds the production dependency set from the loaded config.
// Tests construct a Deps by hand instead
func NewDeps() (*Deps, error) {
	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	tokens, err := security.NewTokenIssuer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token issuer, %w", err)
	}

	return &Deps{
		DB:     database,
		Argon:  security.New(),
		Tokens: tokens,
		Mailer: service.NewSMTPMailer(),
	}, nil
}
