package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/linkmark/linkmark/internal/auth/audit"
	"github.com/linkmark/linkmark/internal/auth/domain"
	"github.com/linkmark/linkmark/internal/auth/store"
	"github.com/linkmark/linkmark/pkg/cryptox"
	"github.com/linkmark/linkmark/pkg/jwtx"
	"github.com/linkmark/linkmark/pkg/slogx"
)

// CredentialBackend is the capability surface a delegated identity provider
// would satisfy instead of this service: verify a credential pair and hand
// back a session. AuthService is the self-hosted implementation; a managed
// backend would be another.
type CredentialBackend interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
}

type AuthService struct {
	Store  store.Store
	Signer *jwtx.Signer
	Audit  audit.Sink
}

var _ CredentialBackend = (*AuthService)(nil)

// Login verifies an email/password pair and mints a session token. Unknown
// email and wrong password take the same exit: the audit line is specific,
// the returned error never is.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	log := slogx.FromContext(ctx)

	if email == "" || password == "" {
		s.Audit.Record("Login failed: missing fields")
		return domain.Session{}, ErrMissingFields
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.Audit.Recordf("Login failed: user not found (%s)", email)
			return domain.Session{}, ErrInvalidCredentials
		}
		s.Audit.Recordf("Login failed: store unavailable: %v", err)
		return domain.Session{}, fmt.Errorf("login: lookup user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			s.Audit.Recordf("Login failed: incorrect password for (%s)", email)
			return domain.Session{}, ErrInvalidCredentials
		}
		// Stored hash is structurally broken; that is our fault, not the
		// caller's, but the response still must not say so.
		log.Error("stored password hash invalid", "user_id", user.ID, "err", err)
		s.Audit.Recordf("Login failed: invalid stored hash for (%s)", email)
		return domain.Session{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.Signer.Issue(user.ID, user.Email)
	if err != nil {
		s.Audit.Recordf("Login failed: token issuance error for (%s)", email)
		return domain.Session{}, fmt.Errorf("login: issue token: %w", err)
	}

	s.Audit.Recordf("Login successful: %s", email)
	log.Info("login succeeded", "user_id", user.ID)

	return domain.Session{
		User:      user.Public(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout records a logout for the audit trail. Session tokens are
// self-contained, so there is nothing server-side to revoke; the client
// forgetting the token is the logout.
func (s *AuthService) Logout(ctx context.Context) {
	s.Audit.Record("Logout successful")
	slogx.FromContext(ctx).Info("logout")
}
