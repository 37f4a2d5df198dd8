package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linkmark/linkmark/internal/auth/service"
	"github.com/linkmark/linkmark/internal/auth/store"
	"github.com/linkmark/linkmark/pkg/httpx"
	"github.com/linkmark/linkmark/pkg/slogx"
)

type RegisterHandler struct {
	Registration *service.RegistrationService
}

// ServeHTTP godoc
//
//	@Summary		Register Endpoint
//	@Description	Create a new user account with a unique username and email
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RegisterRequest	true	"username, email, password"
//	@Success		201		{object}	RegisterResponse	"message, user"
//	@Failure		400		{object}	ErrorResponse		"validation or conflict"
//	@Failure		500		{object}	ErrorResponse		"store unavailable"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Request body must be valid JSON",
		})
		return
	}

	user, err := h.Registration.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "Username, email and password are required",
			})
		case errors.Is(err, service.ErrWeakPassword):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:            "invalid_request",
				ErrorDescription: "Password must be at least 8 characters with a letter and a digit",
			})
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:            "email_taken",
				ErrorDescription: "This email is already in use",
			})
		case errors.Is(err, service.ErrUsernameTaken):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:            "username_taken",
				ErrorDescription: "This username is already taken",
			})
		case errors.Is(err, store.ErrUnavailable):
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error:            "store_unavailable",
				ErrorDescription: "User store is unavailable, try again later",
			})
		default:
			log.Error("registration failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
				Error: "internal_error",
			})
		}
		return
	}

	// The record comes back with its hash; only the public projection may
	// leave the process.
	httpx.WriteJSON(w, http.StatusCreated, RegisterResponse{
		Message: "User created successfully",
		User:    user.Public(),
	})
}
