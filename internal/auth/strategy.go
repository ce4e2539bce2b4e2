package auth

import (
	"context"

	"github.com/sigma-platform/authentication/internal/domain"
)

// PasswordAuthenticator verifies an email/password pair.
type PasswordAuthenticator interface {
	Authenticate(ctx context.Context, email, password string) error
}

// Authenticator dispatches credentials to the variant named by Credentials.Strategy
// and returns the subject to put in the token.
type Authenticator struct {
	passwords PasswordAuthenticator
}

// NewAuthenticator constructs an authenticator.
func NewAuthenticator(passwords PasswordAuthenticator) *Authenticator {
	return &Authenticator{passwords: passwords}
}

// Authenticate verifies creds. An empty strategy means password.
func (a *Authenticator) Authenticate(ctx context.Context, creds domain.Credentials) (string, error) {
	switch creds.Strategy {
	case domain.StrategyPassword, "":
		if creds.Email == "" || creds.Password == "" {
			return "", domain.ErrInvalidCredentials
		}
		if err := a.passwords.Authenticate(ctx, creds.Email, creds.Password); err != nil {
			return "", err
		}
		return creds.Email, nil
	case domain.StrategyFederated:
		if creds.Token == "" {
			return "", domain.ErrInvalidCredentials
		}
		// No identity provider is configured for federated login.
		return "", domain.ErrUnsupportedStrategy
	default:
		return "", domain.ErrUnsupportedStrategy
	}
}
