// Package service implements the registration and login flows on top of the
// record store, the password hasher, and the session signer.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/linkmark/linkmark/internal/auth/audit"
	"github.com/linkmark/linkmark/internal/auth/domain"
	"github.com/linkmark/linkmark/internal/auth/store"
	"github.com/linkmark/linkmark/pkg/cryptox"
	"github.com/linkmark/linkmark/pkg/idx"
	"github.com/linkmark/linkmark/pkg/slogx"
)

// Password policy: at least MinPasswordLength runes with one letter and one
// digit. Enforced here at registration only; login verifies whatever hash is
// stored.
const MinPasswordLength = 8

type RegistrationService struct {
	Store store.Store
	Audit audit.Sink
}

// Register creates a new user record. Uniqueness is checked per field so the
// caller can report which one conflicted, and checked again inside
// CreateUser under the store lock so overlapping registrations cannot race
// past each other. Every outcome lands one audit line.
func (s *RegistrationService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" {
		s.Audit.Record("Registration failed: missing fields")
		return domain.User{}, ErrMissingFields
	}
	if err := checkPasswordPolicy(password); err != nil {
		s.Audit.Recordf("Registration failed: weak password for (%s)", email)
		return domain.User{}, err
	}

	users := s.Store.Users()

	// Pre-flight conflict checks. Duplicate email is reported before
	// duplicate username, matching the order a user fills the form.
	if _, err := users.GetUserByEmail(ctx, email); err == nil {
		s.Audit.Recordf("Registration failed: email already in use (%s)", email)
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		s.Audit.Recordf("Registration failed: store unavailable: %v", err)
		return domain.User{}, fmt.Errorf("register: lookup email: %w", err)
	}

	if _, err := users.GetUserByUsername(ctx, username); err == nil {
		s.Audit.Recordf("Registration failed: username already taken (%s)", username)
		return domain.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		s.Audit.Recordf("Registration failed: store unavailable: %v", err)
		return domain.User{}, fmt.Errorf("register: lookup username: %w", err)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("password hashing failed", "err", err)
		return domain.User{}, fmt.Errorf("register: hash password: %w", err)
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := users.CreateUser(ctx, user); err != nil {
		// The store re-checks uniqueness under its lock; a concurrent
		// registration may have won the race since the pre-flight check.
		switch {
		case errors.Is(err, store.ErrEmailTaken):
			s.Audit.Recordf("Registration failed: email already in use (%s)", email)
			return domain.User{}, ErrEmailTaken
		case errors.Is(err, store.ErrUsernameTaken):
			s.Audit.Recordf("Registration failed: username already taken (%s)", username)
			return domain.User{}, ErrUsernameTaken
		default:
			s.Audit.Recordf("Registration failed: store unavailable: %v", err)
			return domain.User{}, fmt.Errorf("register: persist user: %w", err)
		}
	}

	s.Audit.Recordf("User created: %s (%s)", username, email)
	log.Info("user registered", "user_id", user.ID, "username", username)
	return user, nil
}

func checkPasswordPolicy(password string) error {
	runes := []rune(password)
	if len(runes) < MinPasswordLength {
		return ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range runes {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}
