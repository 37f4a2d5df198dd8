package service

import "errors"

var (
	// Validation failures: the caller's input was bad, nothing changed.
	ErrMissingFields = errors.New("service: required fields missing")
	ErrWeakPassword  = errors.New("service: password does not meet policy")

	// Uniqueness conflicts, reported per field so the caller can tell the
	// user which one to change.
	ErrEmailTaken    = errors.New("service: email already in use")
	ErrUsernameTaken = errors.New("service: username already taken")

	// ErrInvalidCredentials is deliberately uninformative. Unknown email and
	// wrong password both surface as this exact error so responses cannot be
	// used to enumerate accounts; the audit log keeps the specific reason.
	ErrInvalidCredentials = errors.New("service: invalid credentials")
)
