package http

import (
	"net/http"

	"github.com/linkmark/linkmark/internal/auth/service"
	"github.com/linkmark/linkmark/pkg/httpx"
)

type LogoutHandler struct {
	Auth *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Logout Endpoint
//	@Description	Clear the session cookie. Tokens are self-contained and not revocable, so this is advisory: clients must also discard any bearer token they hold
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	MessageResponse	"message"
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Auth.Logout(r.Context())

	// Expire the cookie with the same attributes it was set with.
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})

	httpx.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Logout successful"})
}
