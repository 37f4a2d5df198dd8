package http

import "github.com/linkmark/linkmark/internal/auth/domain"

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Message string            `json:"message"`
	User    domain.PublicUser `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message   string            `json:"message"`
	User      domain.PublicUser `json:"user"`
	Token     string            `json:"token"`
	TokenType string            `json:"token_type"` // always "Bearer"
	ExpiresIn int64             `json:"expires_in"` // seconds until expiry
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Store  string `json:"store"`
	Signer string `json:"signer"`
}
