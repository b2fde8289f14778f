package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	a := New()

	h1, err := a.GenerateFromPassword("longpass1")
	require.NoError(t, err)

	h2, err := a.GenerateFromPassword("longpass1")
	require.NoError(t, err)

	// Fresh salt per call, so two hashes of the same password differ
	assert.NotEqual(t, h1, h2)
	assert.NotEqual(t, "longpass1", h1)

	assert.True(t, a.VerifyPasswd("longpass1", h1))
	assert.True(t, a.VerifyPasswd("longpass1", h2))
	assert.False(t, a.VerifyPasswd("wrongpass", h1))
}

func TestVerifyMalformedHash(t *testing.T) {
	a := New()

	h, err := a.GenerateFromPassword("longpass1")
	require.NoError(t, err)

	cases := map[string]string{
		"empty":            "",
		"not a hash":       "definitely-not-a-hash",
		"truncated":        h[:20],
		"missing parts":    "$argon2id$v=19$m=65536",
		"bad params":       "$argon2id$v=19$m=x,t=y,p=z$c2FsdA$aGFzaA",
		"bad salt b64":     strings.Replace(h, "$", "$!", 4),
		"trailing garbage": h + "$extra",
	}

	for name, bad := range cases {
		t.Run(name, func(t *testing.T) {
			assert.False(t, a.VerifyPasswd("longpass1", bad))
		})
	}
}
