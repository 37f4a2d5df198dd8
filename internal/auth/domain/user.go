// Package domain holds the core types shared by the auth service layers.
package domain

import "time"

// User is a stored account record. PasswordHash is a bcrypt hash; the
// plaintext never leaves the registration or login request that carried it.
type User struct {
	ID           string
	Username     string // unique, case-sensitive
	Email        string // unique, the login key
	PasswordHash string
	CreatedAt    time.Time
}

// PublicUser is the projection of a User that is safe to return to clients.
// The password hash must never ride on a response.
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns the client-safe projection of u.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
