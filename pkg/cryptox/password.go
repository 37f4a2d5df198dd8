// Package cryptox holds the password hashing primitives for the auth service.
package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor. Cost 10 keeps login latency tolerable
// on modest hardware while staying expensive enough to frustrate offline
// cracking; existing stored hashes verify regardless of the cost they were
// created with, so this can be raised later without a migration.
const HashCost = 10

// ErrMismatch reports that the password does not match the stored hash. It is
// deliberately indistinguishable in shape from any other wrong password.
var ErrMismatch = errors.New("cryptox: password does not match")

// HashPassword returns a bcrypt hash of the password. The salt and cost
// parameters are embedded in the output, so hashing the same password twice
// yields different strings that both verify.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("cryptox: password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored bcrypt hash.
// A merely-wrong password returns ErrMismatch; any other error means the
// stored hash itself is structurally invalid.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return fmt.Errorf("cryptox: invalid password hash: %w", err)
}
