package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/linkmark/linkmark/internal/auth/service"
	"github.com/linkmark/linkmark/internal/auth/store"
	"github.com/linkmark/linkmark/pkg/httpx"
	"github.com/linkmark/linkmark/pkg/slogx"
)

// sessionCookieName is the cookie browser clients authenticate with; API
// clients use the token from the response body as a bearer token instead.
const sessionCookieName = "token"

type LoginHandler struct {
	Auth *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Verify email/password credentials and issue a session token valid for two hours
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"email, password"
//	@Success		200		{object}	LoginResponse	"message, user, token, token_type, expires_in"
//	@Failure		400		{object}	ErrorResponse	"missing fields"
//	@Failure		401		{object}	ErrorResponse	"invalid credentials"
//	@Failure		500		{object}	ErrorResponse	"store unavailable"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Request body must be valid JSON",
		})
		return
	}

	session, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "Email and password are required",
			})
		case errors.Is(err, service.ErrInvalidCredentials):
			// One generic message for every credential failure.
			httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{
				Error:            "invalid_credentials",
				ErrorDescription: "Invalid credentials",
			})
		case errors.Is(err, store.ErrUnavailable):
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:            "store_unavailable",
				ErrorDescription: "User store is unavailable, try again later",
			})
		default:
			log.Error("login failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "internal_error",
			})
		}
		return
	}

	expiresIn := time.Until(session.ExpiresAt)

	// Browser clients get the token as a cookie too.
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(expiresIn.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})

	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		Message:   "Login successful",
		User:      session.User,
		Token:     session.Token,
		TokenType: "Bearer",
		ExpiresIn: int64(expiresIn.Seconds()),
	})
}
