package likes

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/forum-go/apperror"
	"github.com/user/forum-go/auth"
)

// LikeHandler handles HTTP requests for post likes.
type LikeHandler struct {
	service LikeService
}

// NewLikeHandler creates a new LikeHandler.
func NewLikeHandler(service LikeService) *LikeHandler {
	return &LikeHandler{service: service}
}

// Toggle godoc
// @Summary Toggle a like
// @Description Likes the post if the caller has not liked it, unlikes it otherwise.
// @Tags Likes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} likes.ToggleResult
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/posts/{id}/like [post]
func (h *LikeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("no authentication context found", nil))
		return
	}
	postID, ok := postID(w, r)
	if !ok {
		return
	}

	result, err := h.service.Toggle(r.Context(), postID, identity.ID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, result)
}

// Status godoc
// @Summary Like status
// @Description Reports whether the authenticated user has liked the post.
// @Tags Likes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/posts/{id}/liked [get]
func (h *LikeHandler) Status(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("no authentication context found", nil))
		return
	}
	postID, ok := postID(w, r)
	if !ok {
		return
	}

	liked, err := h.service.Status(r.Context(), postID, identity.ID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

func postID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		auth.WriteError(w, r, apperror.NewNotFoundError("Post not found", nil))
		return 0, false
	}
	return id, true
}
