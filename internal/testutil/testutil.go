// Package testutil builds the in-memory dependency set the handler
// tests run against
package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"revas/exchange-api/app"
	"revas/exchange-api/internal"
	"revas/exchange-api/internal/model"
	"revas/exchange-api/pkg/apperr"
	"revas/exchange-api/pkg/security"
)

// MailRecorder implements service.Mailer and records every send
// instead of talking to an SMTP server. Set Fail to simulate delivery
// failures
type MailRecorder struct {
	mu   sync.Mutex
	Fail bool

	Verifications []VerificationMail
	Waitlist      []WaitlistMail
}

type VerificationMail struct {
	To   string
	Name string
	Code string
}

type WaitlistMail struct {
	To   string
	Name string
}

func (m *MailRecorder) SendVerificationEmail(to, name, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Fail {
		return apperr.ErrDeliveryFailure
	}

	m.Verifications = append(m.Verifications, VerificationMail{To: to, Name: name, Code: code})
	return nil
}

func (m *MailRecorder) SendWaitlistEmail(to, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Fail {
		return apperr.ErrDeliveryFailure
	}

	m.Waitlist = append(m.Waitlist, WaitlistMail{To: to, Name: name})
	return nil
}

// LastVerificationCode returns the code of the most recent verification
// mail sent to addr
func (m *MailRecorder) LastVerificationCode(t *testing.T, addr string) string {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.Verifications) - 1; i >= 0; i-- {
		if m.Verifications[i].To == addr {
			return m.Verifications[i].Code
		}
	}

	t.Fatalf("no verification mail sent to %s", addr)
	return ""
}

// NewIssuer mints a throwaway RSA key pair and wraps it in a
// TokenIssuer with short TTLs
func NewIssuer(t *testing.T) *security.TokenIssuer {
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

	iss, err := security.NewTokenIssuerFromPEM(privPEM, pubPEM, 15*time.Minute, time.Hour)
	require.NoError(t, err)

	return iss
}

// NewDeps returns a dependency set backed by an in-memory SQLite
// database with all tables migrated
func NewDeps(t *testing.T) (*internal.Deps, *MailRecorder) {
	t.Helper()

	// A named shared-cache DSN keeps the database alive across the
	// connections gorm pools. A plain :memory: DSN gives every pooled
	// connection its own empty database
	name, err := gonanoid.New(12)
	require.NoError(t, err)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = gdb.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Product{},
		&model.CatalogProduct{},
		&model.WaitlistEntry{},
		&model.Country{},
		&model.State{},
	)
	require.NoError(t, err)

	mail := &MailRecorder{}

	return &internal.Deps{
		DB:     gdb,
		Argon:  security.New(),
		Tokens: NewIssuer(t),
		Mailer: mail,
	}, mail
}

// NewServer builds a full router over an in-memory dependency set
func NewServer(t *testing.T) (*gin.Engine, *internal.Deps, *MailRecorder) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	d, mail := NewDeps(t)
	return app.NewRouter(d), d, mail
}

// CreateUser inserts a user row directly, bypassing the signup
// endpoint
func CreateUser(t *testing.T, d *internal.Deps, email, password string, verified bool) *model.User {
	t.Helper()

	hash, err := d.Argon.GenerateFromPassword(password)
	require.NoError(t, err)

	id, err := gonanoid.New(16)
	require.NoError(t, err)

	user := &model.User{
		ID:            id,
		FirstName:     "Test",
		LastName:      "User",
		Role:          "seller",
		CompanyName:   "Acme Recycling",
		CompanyEmail:  email,
		PhoneNumber:   "+1555" + id[:7],
		PasswordHash:  hash,
		EmailVerified: verified,
	}

	if !verified {
		code, err := security.GenerateOTP()
		require.NoError(t, err)
		user.VerificationCode = &code
	}

	require.NoError(t, d.DB.Create(user).Error)
	return user
}

// AccessCookie mints a valid access token for userID and wraps it in
// the cookie the auth middleware reads
func AccessCookie(t *testing.T, d *internal.Deps, userID string) *http.Cookie {
	t.Helper()

	token, err := d.Tokens.Issue(userID, security.TokenAccess)
	require.NoError(t, err)

	return &http.Cookie{Name: "access_token", Value: token, Path: "/"}
}
