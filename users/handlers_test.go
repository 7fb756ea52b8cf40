package users

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/forum-go/apperror"
	"github.com/user/forum-go/auth"
)

type stubUserService struct {
	profile  *ProfileResponse
	err      error
	gotID    int
	wasAsked bool
}

func (s *stubUserService) GetByID(ctx context.Context, userID int) (*ProfileResponse, error) {
	s.gotID, s.wasAsked = userID, true
	return s.profile, s.err
}

func TestHandleMe(t *testing.T) {
	profile := &ProfileResponse{ID: 7, Username: "alice", Role: auth.RoleUser, CreatedAt: time.Now()}
	svc := &stubUserService{profile: profile}
	h := NewUserHandlers(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	ctx := auth.NewContextWithIdentity(req.Context(), auth.Identity{ID: 7, Username: "alice", Role: auth.RoleUser})
	rec := httptest.NewRecorder()
	h.HandleMe()(rec, req.WithContext(ctx))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, svc.gotID)

	var got ProfileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "alice", got.Username)
	assert.Nil(t, got.Birthdate)
}

func TestHandleMeWithoutIdentity(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandlers(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	h.HandleMe()(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, svc.wasAsked)
}

func TestHandleMeUserGone(t *testing.T) {
	svc := &stubUserService{err: apperror.NewNotFoundError("user with ID 7 not found", nil)}
	h := NewUserHandlers(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	ctx := auth.NewContextWithIdentity(req.Context(), auth.Identity{ID: 7, Username: "alice", Role: auth.RoleUser})
	rec := httptest.NewRecorder()
	h.HandleMe()(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
