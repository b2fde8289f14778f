// Package apperr defines the closed set of error kinds the API can
// return. Handlers branch on these with errors.Is instead of matching
// message strings
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrValidation         = errors.New("invalid request")
	ErrEmailConflict      = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrUserNotFound       = errors.New("user not found")
	ErrExpiredToken       = errors.New("token expired")
	ErrInvalidSignature   = errors.New("token signature invalid")
	ErrMalformedToken     = errors.New("token malformed")
	ErrDeliveryFailure    = errors.New("mail delivery failed")
	ErrPersistenceFailure = errors.New("persistence failure")
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("record already exists")
)

// Kind returns the stable machine-readable name of a known error kind,
// or "internal" for anything outside the closed set.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrEmailConflict):
		return "email_conflict"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrInvalidCode):
		return "invalid_code"
	case errors.Is(err, ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, ErrExpiredToken):
		return "expired_token"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrMalformedToken):
		return "malformed_token"
	case errors.Is(err, ErrDeliveryFailure):
		return "delivery_failure"
	case errors.Is(err, ErrPersistenceFailure):
		return "persistence_failure"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}

// Status maps an error kind to the HTTP status handlers respond with
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrEmailConflict), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidCode),
		errors.Is(err, ErrExpiredToken),
		errors.Is(err, ErrInvalidSignature),
		errors.Is(err, ErrMalformedToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrDeliveryFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
