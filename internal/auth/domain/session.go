package domain

import "time"

// Session is what a successful login hands back: the authenticated user and
// a self-contained bearer token. Nothing is persisted server-side; the token
// simply stops validating once ExpiresAt passes.
type Session struct {
	User      PublicUser
	Token     string
	ExpiresAt time.Time
}
