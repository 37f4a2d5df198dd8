package http

import (
	"errors"
	"net/http"

	"github.com/linkmark/linkmark/internal/auth/store"
	"github.com/linkmark/linkmark/pkg/httpx"
	"github.com/linkmark/linkmark/pkg/slogx"
)

type MeHandler struct {
	Store store.Store
}

// ServeHTTP godoc
//
//	@Summary		Current User Endpoint
//	@Description	Return the profile of the user the bearer session token belongs to
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	domain.PublicUser	"id, username, email, created_at"
//	@Failure		401	"missing, expired or invalid token"
//	@Failure		404	{object}	ErrorResponse	"account no longer exists"
//	@Router			/v1/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)

	user, err := h.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Token is valid but the record is gone.
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{
				Error:            "not_found",
				ErrorDescription: "Account no longer exists",
			})
			return
		}
		log.Error("profile lookup failed", "user_id", userID, "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "store_unavailable",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, user.Public())
}
