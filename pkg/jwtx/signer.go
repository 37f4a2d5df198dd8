// Package jwtx mints and validates the self-contained session tokens issued
// at login. Tokens are HS256 JWTs signed with a single process-wide secret;
// there is no key rotation and no server-side session state.
package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
)

// Verifier validates a session token and returns its claims if it is legit.
// An expired token fails with ErrExpired, which callers must keep distinct
// from the tampered/garbage cases (ErrInvalidSig, ErrMalformed).
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Signer issues and verifies HS256 session tokens with a fixed TTL.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewSigner builds a Signer. The secret must be supplied externally and
// non-empty; there is no baked-in fallback.
func NewSigner(secret []byte, issuer string, ttl time.Duration) (*Signer, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: signing secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Signer{secret: secret, issuer: issuer, ttl: ttl}, nil
}

// TTL returns the configured session lifetime.
func (s *Signer) TTL() time.Duration { return s.ttl }

// Issue mints a signed session token for the user. It returns the compact
// token string and its absolute expiry.
func (s *Signer) Issue(userID, email string) (string, time.Time, error) {
	return s.IssueAt(userID, email, time.Now().UTC())
}

// IssueAt is Issue with an explicit issuance time, for tests that need to
// produce already-expired tokens without sleeping.
func (s *Signer) IssueAt(userID, email string, now time.Time) (string, time.Time, error) {
	claims := NewSessionClaims(userID, email, s.issuer, s.ttl, now)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwtx: sign token: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}

// Verify parses and validates a session token, returning the claims on
// success. Signature, expiry, and issuer are all enforced.
func (s *Signer) Verify(token string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		default:
			return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	if s.issuer != "" && claims.Issuer != s.issuer {
		return Claims{}, ErrIssuer
	}
	return claims, nil
}
