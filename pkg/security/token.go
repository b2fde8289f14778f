package security

import (
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"

	"revas/exchange-api/pkg/apperr"
)

type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// TokenIssuer mints and verifies RS256 signed bearer tokens. Tokens are
// stateless: the subject, kind and expiry all live in the signed claims,
// nothing is persisted server-side
type TokenIssuer struct {
	priv       *rsa.PrivateKey
	pub        *rsa.PublicKey
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewTokenIssuer builds a TokenIssuer from the configured key pair. The
// keys are stored base64-encoded PEM in jwt.private_key and
// jwt.public_key
func NewTokenIssuer() (*TokenIssuer, error) {
	privPEM, err := base64.StdEncoding.DecodeString(viper.GetString("jwt.private_key"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode jwt.private_key, %w", err)
	}

	pubPEM, err := base64.StdEncoding.DecodeString(viper.GetString("jwt.public_key"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode jwt.public_key, %w", err)
	}

	return NewTokenIssuerFromPEM(
		privPEM,
		pubPEM,
		time.Duration(viper.GetInt("jwt.access_ttl"))*time.Minute,
		time.Duration(viper.GetInt("jwt.refresh_ttl"))*time.Minute,
	)
}

func NewTokenIssuerFromPEM(privPEM, pubPEM []byte, accessTTL, refreshTTL time.Duration) (*TokenIssuer, error) {
	priv, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA private key, %w", err)
	}

	pub, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA public key, %w", err)
	}

	return &TokenIssuer{
		priv:       priv,
		pub:        pub,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}, nil
}

// Issue mints a token of the given kind for subject using the kind's
// configured TTL
func (t *TokenIssuer) Issue(subject string, kind TokenKind) (string, error) {
	ttl := t.AccessTTL
	if kind == TokenRefresh {
		ttl = t.RefreshTTL
	}

	return t.IssueWithTTL(subject, kind, ttl)
}

func (t *TokenIssuer) IssueWithTTL(subject string, kind TokenKind, ttl time.Duration) (string, error) {
	now := time.Now()

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub":  subject,
		"type": string(kind),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	})

	return tok.SignedString(t.priv)
}

// Verify checks the signature and expiry of a token and that it was
// issued as kind. A refresh token is never accepted where an access
// token is expected and vice versa. Returns the embedded subject
func (t *TokenIssuer) Verify(tokenStr string, kind TokenKind) (string, error) {
	tok, err := jwt.Parse(tokenStr, func(tk *jwt.Token) (any, error) {
		if tk.Method.Alg() != jwt.SigningMethodRS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", tk.Method.Alg())
		}

		return t.pub, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", apperr.ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", apperr.ErrInvalidSignature
		default:
			return "", apperr.ErrMalformedToken
		}
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperr.ErrMalformedToken
	}

	if kindClaim, _ := claims["type"].(string); kindClaim != string(kind) {
		return "", apperr.ErrMalformedToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", apperr.ErrMalformedToken
	}

	return sub, nil
}
