package security

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sixDigits = regexp.MustCompile(`^[0-9]{6}$`)

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}

	for i := 0; i < 50; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)

		assert.True(t, sixDigits.MatchString(code), "got %q", code)
		seen[code] = true
	}

	// 50 draws from a million values collide with negligible
	// probability
	assert.Greater(t, len(seen), 1)
}
