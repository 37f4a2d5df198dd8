package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is the lifetime of a session token. Sessions are
// self-contained and cannot be revoked server-side, so the window is kept
// short; logout is the client forgetting the token.
const DefaultSessionTTL = 2 * time.Hour

// Claims are the session-token claims. The user ID rides in the registered
// "sub" claim; email is the only custom field.
type Claims struct {
	jwt.RegisteredClaims

	// Email is the login key of the authenticated user.
	Email string `json:"email,omitempty"`
}

// UserID returns the subject claim under its domain name.
func (c Claims) UserID() string { return c.Subject }

// NewSessionClaims builds claims for a freshly authenticated user.
func NewSessionClaims(userID, email, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email: email,
	}
}
