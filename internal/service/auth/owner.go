package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/folioworks/folio-api/internal/config"
)

// dummyHash is compared against when the email does not match so that both
// failure paths cost one bcrypt comparison.
const dummyHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8.3Q9Z6Q7aJ2Z1Q9Z6Q7aJ2Z1Q9Z6Q"

// OwnerAuthenticator checks the site owner's credentials and issues tokens.
type OwnerAuthenticator struct {
	email        string
	passwordHash string
	verifier     PasswordVerifier
	tokens       JWTService
	logger       *slog.Logger
}

// NewOwnerAuthenticator creates an authenticator for the configured owner.
func NewOwnerAuthenticator(
	cfg config.AuthConfig,
	verifier PasswordVerifier,
	tokens JWTService,
	logger *slog.Logger,
) (*OwnerAuthenticator, error) {
	if verifier == nil || tokens == nil {
		return nil, errors.New("verifier and token service are required")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.OwnerEmail == "" || cfg.OwnerPasswordHash == "" {
		return nil, errors.New("owner email and password hash are required")
	}
	return &OwnerAuthenticator{
		email:        strings.ToLower(strings.TrimSpace(cfg.OwnerEmail)),
		passwordHash: cfg.OwnerPasswordHash,
		verifier:     verifier,
		tokens:       tokens,
		logger:       logger.With(slog.String("component", "owner_auth")),
	}, nil
}

// Login returns an access token and its expiry when email and password match
// the owner's. Any mismatch returns ErrInvalidCredentials.
func (a *OwnerAuthenticator) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	given := strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(given), []byte(a.email)) == 1

	hash := a.passwordHash
	if !emailOK {
		hash = dummyHash
	}
	passwordOK := a.verifier.Compare(hash, password) == nil

	if !emailOK || !passwordOK {
		a.logger.WarnContext(ctx, "owner login failed")
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := a.tokens.GenerateToken(ctx, a.email)
	if err != nil {
		return "", time.Time{}, err
	}
	a.logger.InfoContext(ctx, "owner logged in", "expires_at", expiresAt)
	return token, expiresAt, nil
}
