package posts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/forum-go/apperror"
	"github.com/user/forum-go/auth"
)

type stubPostService struct {
	list      []Post
	post      *Post
	err       error
	createdBy auth.Identity
	deletedID int
}

func (s *stubPostService) List(ctx context.Context) ([]Post, error) {
	return s.list, s.err
}

func (s *stubPostService) Get(ctx context.Context, id int) (*Post, error) {
	return s.post, s.err
}

func (s *stubPostService) Create(ctx context.Context, identity auth.Identity, req CreatePostRequest) (*Post, error) {
	s.createdBy = identity
	return s.post, s.err
}

func (s *stubPostService) Delete(ctx context.Context, id int) error {
	s.deletedID = id
	return s.err
}

// routedRequest dispatches through a chi router so URL parameters resolve the
// same way they do in production.
func routedRequest(t *testing.T, method, pattern, target string, body string, handler http.HandlerFunc, identity *auth.Identity) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, handler)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if identity != nil {
		req = req.WithContext(auth.NewContextWithIdentity(req.Context(), *identity))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestListPosts(t *testing.T) {
	now := time.Now()
	svc := &stubPostService{list: []Post{
		{ID: 2, Author: "bob", Title: "second", Category: "general", Views: 3, LikeCount: 1, CreatedAt: now},
		{ID: 1, Author: "alice", Title: "first", Category: "general", CreatedAt: now.Add(-time.Hour)},
	}}
	h := NewPostHandler(svc)

	rec := routedRequest(t, http.MethodGet, "/api/posts", "/api/posts", "", h.List, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, int64(1), got[0].LikeCount)
}

func TestGetPost(t *testing.T) {
	svc := &stubPostService{post: &Post{ID: 5, Author: "alice", Title: "hello", Views: 9, CommentCount: 2}}
	h := NewPostHandler(svc)

	rec := routedRequest(t, http.MethodGet, "/api/posts/{id}", "/api/posts/5", "", h.Get, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 5, got.ID)
	assert.Equal(t, int64(9), int64(got.Views))
}

func TestGetPostNotFound(t *testing.T) {
	svc := &stubPostService{err: apperror.NewNotFoundError("Post not found", nil)}
	h := NewPostHandler(svc)

	rec := routedRequest(t, http.MethodGet, "/api/posts/{id}", "/api/posts/99", "", h.Get, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPostNonNumericID(t *testing.T) {
	svc := &stubPostService{}
	h := NewPostHandler(svc)

	for _, target := range []string{"/api/posts/abc", "/api/posts/0", "/api/posts/-1"} {
		rec := routedRequest(t, http.MethodGet, "/api/posts/{id}", target, "", h.Get, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, "target %s", target)
	}
}

func TestCreatePost(t *testing.T) {
	svc := &stubPostService{post: &Post{ID: 1, UserID: 7, Author: "alice", Title: "hello", Category: "general", Body: "hi"}}
	h := NewPostHandler(svc)
	identity := auth.Identity{ID: 7, Username: "alice", Role: auth.RoleUser}

	rec := routedRequest(t, http.MethodPost, "/api/posts", "/api/posts",
		`{"title":"hello","category":"general","body":"hi"}`, h.Create, &identity)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, identity, svc.createdBy)
}

func TestCreatePostWithoutIdentity(t *testing.T) {
	svc := &stubPostService{}
	h := NewPostHandler(svc)

	rec := routedRequest(t, http.MethodPost, "/api/posts", "/api/posts",
		`{"title":"hello","category":"general","body":"hi"}`, h.Create, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreatePostBadJSON(t *testing.T) {
	svc := &stubPostService{}
	h := NewPostHandler(svc)
	identity := auth.Identity{ID: 7, Username: "alice", Role: auth.RoleUser}

	rec := routedRequest(t, http.MethodPost, "/api/posts", "/api/posts", `{broken`, h.Create, &identity)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeletePost(t *testing.T) {
	svc := &stubPostService{}
	h := NewPostHandler(svc)

	rec := routedRequest(t, http.MethodDelete, "/api/posts/{id}", "/api/posts/3", "", h.Delete, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, svc.deletedID)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Post deleted successfully", body["message"])
}

func TestDeletePostNotFound(t *testing.T) {
	svc := &stubPostService{err: apperror.NewNotFoundError("Post not found", nil)}
	h := NewPostHandler(svc)

	rec := routedRequest(t, http.MethodDelete, "/api/posts/{id}", "/api/posts/3", "", h.Delete, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
