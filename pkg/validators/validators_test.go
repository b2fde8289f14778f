package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailValidator(t *testing.T) {
	assert.NoError(t, EmailValidator("a@x.com"))
	assert.NoError(t, EmailValidator("first.last@factory.example.co"))

	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not-an-email"), ErrEmailInvalid)
	assert.ErrorIs(t, EmailValidator("a@"), ErrEmailInvalid)
}

func TestPasswordValidator(t *testing.T) {
	assert.NoError(t, PasswordValidator("longpass1"))

	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator("short"), ErrPasswordTooShort)
	assert.ErrorIs(t, PasswordValidator(strings.Repeat("a", 256)), ErrPasswordTooLong)
}

func TestPhoneValidator(t *testing.T) {
	assert.NoError(t, PhoneValidator("+2348012345678"))
	assert.NoError(t, PhoneValidator("08012345678"))
	assert.NoError(t, PhoneValidator("+1 555-123-4567"))

	assert.ErrorIs(t, PhoneValidator(""), ErrPhoneEmpty)
	assert.ErrorIs(t, PhoneValidator("123"), ErrPhoneInvalid)
	assert.ErrorIs(t, PhoneValidator("call-me-maybe"), ErrPhoneInvalid)
}
