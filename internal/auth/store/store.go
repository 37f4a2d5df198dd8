// Package store defines the data access interface for user records.
// Concrete drivers (jsonfile today) implement it.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/linkmark/linkmark/internal/auth/domain"
)

var (
	ErrNotFound = errors.New("store: not found")

	// ErrUnavailable covers I/O and parse failures on the backing document.
	// An absent document is NOT unavailable; it reads as an empty user set.
	ErrUnavailable = errors.New("store: unavailable")

	// Uniqueness violations. Both match ErrAlreadyExists so callers that
	// don't care which field collided can test once.
	ErrAlreadyExists = errors.New("store: already exists")
	ErrEmailTaken    = fmt.Errorf("store: email already registered: %w", ErrAlreadyExists)
	ErrUsernameTaken = fmt.Errorf("store: username already taken: %w", ErrAlreadyExists)
)

// Store is the root data access interface.
type Store interface {
	Users() Users

	// Ping verifies the backing document is reachable and parseable.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

// Users is the user-record repository. The whole record set lives in one
// serialized document, so every method is a scan; fine at this write volume.
type Users interface {
	// ListUsers returns every stored record.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is the login-path lookup; email is the login key.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByUsername exists for the registration conflict check.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser appends a new record. The email and username uniqueness
	// checks happen under the store's own lock, so two concurrent
	// registrations can never both slip the same email in.
	CreateUser(ctx context.Context, u domain.User) error
}
