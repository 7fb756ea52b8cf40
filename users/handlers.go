package users

import (
	"net/http"

	"github.com/user/forum-go/apperror"
	"github.com/user/forum-go/auth"
)

// UserHandlers provides HTTP handlers for account lookups.
type UserHandlers struct {
	service UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// HandleMe godoc
// @Summary Get current user's account
// @Description Returns the stored account record for the authenticated user.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} users.ProfileResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/me [get]
func (h *UserHandlers) HandleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok {
			auth.WriteError(w, r, apperror.NewAuthError("no authentication context found", nil))
			return
		}

		profile, err := h.service.GetByID(r.Context(), identity.ID)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		auth.WriteJSON(w, http.StatusOK, profile)
	}
}
