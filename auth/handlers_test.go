package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/forum-go/apperror"
)

// stubAuthService returns canned results so handler tests exercise only the
// HTTP layer.
type stubAuthService struct {
	registerUser *User
	registerErr  error
	loginResp    *LoginResponse
	loginErr     error
}

func (s *stubAuthService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	return s.registerUser, s.registerErr
}

func (s *stubAuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	return s.loginResp, s.loginErr
}

func TestHandleRegisterCreated(t *testing.T) {
	user := &User{ID: 1, Username: "alice", Role: RoleUser, CreatedAt: time.Now()}
	h := NewHandlers(&stubAuthService{registerUser: user})

	req := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"username":"alice","password":"secret123"}`))
	rec := httptest.NewRecorder()
	h.HandleRegister()(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, RoleUser, got.Role)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestHandleRegisterBadJSON(t *testing.T) {
	h := NewHandlers(&stubAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()
	h.HandleRegister()(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", errorBody(t, rec))
}

func TestHandleRegisterDuplicateUsername(t *testing.T) {
	h := NewHandlers(&stubAuthService{
		registerErr: apperror.NewConflictError("Username already exists", nil),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/register",
		strings.NewReader(`{"username":"alice","password":"secret123"}`))
	rec := httptest.NewRecorder()
	h.HandleRegister()(rec, req)

	// Duplicates surface as a plain 400, same as any other invalid input.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username already exists", errorBody(t, rec))
}

func TestHandleLoginOK(t *testing.T) {
	resp := &LoginResponse{
		Token: "signed-token",
		User:  &User{ID: 1, Username: "alice", Role: RoleUser},
	}
	h := NewHandlers(&stubAuthService{loginResp: resp})

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"username":"alice","password":"secret123"}`))
	rec := httptest.NewRecorder()
	h.HandleLogin()(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "signed-token", got.Token)
	require.NotNil(t, got.User)
	assert.Equal(t, "alice", got.User.Username)
}

func TestHandleLoginInvalidCredentials(t *testing.T) {
	h := NewHandlers(&stubAuthService{
		loginErr: apperror.NewAuthError("Invalid credentials", nil),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"username":"alice","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.HandleLogin()(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", errorBody(t, rec))
}

func TestWriteErrorWrapsUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	WriteError(rec, req, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "An unexpected error occurred", errorBody(t, rec))
}
