package posts

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/forum-go/apperror"
	"github.com/user/forum-go/auth"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	service PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List godoc
// @Summary List posts
// @Description Returns all posts newest-first, with like and comment counts.
// @Tags Posts
// @Produce json
// @Success 200 {array} posts.Post
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/posts [get]
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, list)
}

// Get godoc
// @Summary Get a single post
// @Description Returns one post and increments its view counter.
// @Tags Posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} posts.Post
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/posts/{id} [get]
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}
	post, err := h.service.Get(r.Context(), id)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, post)
}

// Create godoc
// @Summary Create a post
// @Description Creates a post owned by the authenticated user.
// @Tags Posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postBody body posts.CreatePostRequest true "Post fields"
// @Success 201 {object} posts.Post
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/posts [post]
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		auth.WriteError(w, r, apperror.NewAuthError("no authentication context found", nil))
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		auth.WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
		return
	}
	defer r.Body.Close()

	post, err := h.service.Create(r.Context(), identity, req)
	if err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusCreated, post)
}

// Delete godoc
// @Summary Delete a post
// @Description Deletes a post. Admin role required (enforced by middleware).
// @Tags Posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /api/posts/{id} [delete]
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		auth.WriteError(w, r, err)
		return
	}
	auth.WriteJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}

// postID parses the {id} route parameter. A non-numeric id can never name a
// post, so it is reported as not found.
func postID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		auth.WriteError(w, r, apperror.NewNotFoundError("Post not found", nil))
		return 0, false
	}
	return id, true
}
