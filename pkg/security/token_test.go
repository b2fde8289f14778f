package security

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revas/exchange-api/pkg/apperr"
)

func newTestIssuer(t *testing.T) *TokenIssuer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	pubPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubDER,
	})

	iss, err := NewTokenIssuerFromPEM(privPEM, pubPEM, 15*time.Minute, time.Hour)
	require.NoError(t, err)

	return iss
}

func TestIssueAndVerify(t *testing.T) {
	iss := newTestIssuer(t)

	for _, kind := range []TokenKind{TokenAccess, TokenRefresh} {
		token, err := iss.Issue("user-123", kind)
		require.NoError(t, err)

		sub, err := iss.Verify(token, kind)
		require.NoError(t, err)
		assert.Equal(t, "user-123", sub)
	}
}

func TestVerifyRejectsWrongKind(t *testing.T) {
	iss := newTestIssuer(t)

	access, err := iss.Issue("user-123", TokenAccess)
	require.NoError(t, err)

	refresh, err := iss.Issue("user-123", TokenRefresh)
	require.NoError(t, err)

	_, err = iss.Verify(access, TokenRefresh)
	assert.ErrorIs(t, err, apperr.ErrMalformedToken)

	_, err = iss.Verify(refresh, TokenAccess)
	assert.ErrorIs(t, err, apperr.ErrMalformedToken)
}

func TestVerifyExpired(t *testing.T) {
	iss := newTestIssuer(t)

	token, err := iss.IssueWithTTL("user-123", TokenAccess, 0)
	require.NoError(t, err)

	_, err = iss.Verify(token, TokenAccess)
	assert.ErrorIs(t, err, apperr.ErrExpiredToken)

	token, err = iss.IssueWithTTL("user-123", TokenAccess, -time.Minute)
	require.NoError(t, err)

	_, err = iss.Verify(token, TokenAccess)
	assert.ErrorIs(t, err, apperr.ErrExpiredToken)
}

func TestVerifyTampered(t *testing.T) {
	iss := newTestIssuer(t)

	token, err := iss.Issue("user-123", TokenAccess)
	require.NoError(t, err)

	// Break the signature segment
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}

	_, err = iss.Verify(parts[0]+"."+parts[1]+"."+string(sig), TokenAccess)
	assert.ErrorIs(t, err, apperr.ErrInvalidSignature)
}

func TestVerifyForeignKey(t *testing.T) {
	iss := newTestIssuer(t)
	other := newTestIssuer(t)

	token, err := other.Issue("user-123", TokenAccess)
	require.NoError(t, err)

	_, err = iss.Verify(token, TokenAccess)
	assert.ErrorIs(t, err, apperr.ErrInvalidSignature)
}

func TestVerifyMalformed(t *testing.T) {
	iss := newTestIssuer(t)

	for _, bad := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := iss.Verify(bad, TokenAccess)
		assert.ErrorIs(t, err, apperr.ErrMalformedToken, "token %q", bad)
	}
}
