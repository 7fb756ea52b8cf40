package comments

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/forum-go/apperror"
	"github.com/user/forum-go/auth"
)

// CommentHandler handles HTTP requests for comments.
type CommentHandler struct {
	service CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(service CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// ListForPost godoc
// @Summary List comments for a post
// @Tags Comments
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {array} comments.Comment
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/posts/{id}/comments [get]
func (h *CommentHandler) ListForPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(w, r, "Post not found")
	if !ok {
		return
	}
	list, err := h.service.ListForPost(r.Context(), postID)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, list)
}

// Add godoc
// @Summary Add a comment
// @Description Creates a comment on the post, authored by the authenticated user.
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param commentBody body comments.AddCommentRequest true "Comment body"
// @Success 201 {object} comments.Comment
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/posts/{id}/comments [post]
func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("no authentication context found", nil))
		return
	}
	postID, ok := pathID(w, r, "Post not found")
	if !ok {
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
		return
	}
	defer r.Body.Close()

	comment, err := h.service.Add(r.Context(), identity, postID, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, comment)
}

// Delete godoc
// @Summary Delete a comment
// @Description Deletes a comment. Only the owner or an admin may delete it.
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/comments/{id} [delete]
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("no authentication context found", nil))
		return
	}
	id, ok := pathID(w, r, "Comment not found")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, identity); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted successfully"})
}

func pathID(w http.ResponseWriter, r *http.Request, notFoundMsg string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		auth.WriteError(w, r, apperror.NewNotFoundError(notFoundMsg, nil))
		return 0, false
	}
	return id, true
}
