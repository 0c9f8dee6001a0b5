package api

import (
	"context"
	"net/http"
	"time"

	"github.com/folioworks/folio-api/internal/api/shared"
)

// OwnerLogin checks owner credentials. *auth.OwnerAuthenticator implements it.
type OwnerLogin interface {
	Login(ctx context.Context, email, password string) (string, time.Time, error)
}

// AuthHandler handles owner authentication.
type AuthHandler struct {
	owner OwnerLogin
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(owner OwnerLogin) *AuthHandler {
	return &AuthHandler{owner: owner}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	token, expiresAt, err := h.owner.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
	})
}
