package validators

import (
	"errors"
	"regexp"
)

var (
	ErrPhoneEmpty   = errors.New("no phone number provided")
	ErrPhoneInvalid = errors.New("invalid phone number provided")
)

// Digits with an optional leading + and optional separators. Loose on
// purpose, the number is only used as a uniqueness key
var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,18}[0-9]$`)

func PhoneValidator(p string) error {
	if p == "" {
		return ErrPhoneEmpty
	}

	if !phoneRe.MatchString(p) {
		return ErrPhoneInvalid
	}

	return nil
}
