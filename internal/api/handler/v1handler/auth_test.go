package v1handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"calculator/internal/auth"
	"calculator/pkg/domain"
	"calculator/pkg/logger"
	"calculator/pkg/serrors"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()

	buf, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(buf)
}

func TestRegister(t *testing.T) {
	a, _, routes := newTestHandler(t)
	user := testUser()
	user.IsVerified = false

	a.EXPECT().Register(gomock.Any(), auth.RegisterParams{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "s3cret-pass",
		FirstName: "Alice",
	}).Return(user, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, map[string]string{
		"username":  "alice",
		"email":     "alice@example.com",
		"password":  "s3cret-pass",
		"firstName": "Alice",
	}))
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"isVerified":false`)
}

func TestRegister_Conflict(t *testing.T) {
	a, _, routes := newTestHandler(t)

	a.EXPECT().Register(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrConflict, "username or email already registered"))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "s3cret-pass",
	}))
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"CONFLICT"`)
}

func TestRegister_UnknownFieldRejected(t *testing.T) {
	_, _, routes := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", jsonBody(t, map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "s3cret-pass",
		"isAdmin":  "true",
	}))
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyEmail(t *testing.T) {
	a, _, routes := newTestHandler(t)
	user := testUser()

	a.EXPECT().VerifyEmail(gomock.Any(), "nonce").Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify-email?token=nonce", nil)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"isVerified":true`)
}

func TestVerifyEmail_MissingToken(t *testing.T) {
	_, _, routes := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify-email", nil)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	a, _, routes := newTestHandler(t)
	user := testUser()

	a.EXPECT().Login(gomock.Any(), "alice", "s3cret-pass").Return(&auth.Session{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(30 * time.Minute),
		User:         *user,
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, map[string]string{
		"login":    "alice",
		"password": "s3cret-pass",
	}))
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"accessToken":"access"`)
	require.Contains(t, rec.Body.String(), `"tokenType":"bearer"`)
}

func TestLogin_Unverified(t *testing.T) {
	a, _, routes := newTestHandler(t)

	a.EXPECT().Login(gomock.Any(), "alice", "s3cret-pass").
		Return(nil, serrors.With(serrors.ErrForbidden, "email address not verified"))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", jsonBody(t, map[string]string{
		"login":    "alice",
		"password": "s3cret-pass",
	}))
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Contains(t, rec.Body.String(), "not verified")
}

func TestRefresh(t *testing.T) {
	a, _, routes := newTestHandler(t)
	user := testUser()

	a.EXPECT().Refresh(gomock.Any(), "old-refresh").Return(&auth.Session{
		AccessToken:  "new-access",
		RefreshToken: "new-refresh",
		ExpiresAt:    time.Now().Add(30 * time.Minute),
		User:         *user,
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", jsonBody(t, map[string]string{
		"refreshToken": "old-refresh",
	}))
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"refreshToken":"new-refresh"`)
}

func TestLogout(t *testing.T) {
	a, _, routes := newTestHandler(t)
	user := testUser()

	a.EXPECT().Authenticate(gomock.Any(), "access-token").Return(user, nil)
	a.EXPECT().Logout(gomock.Any(), "access-token", "refresh-token").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", jsonBody(t, map[string]string{
		"refreshToken": "refresh-token",
	}))
	req.Header.Set("Authorization", "Bearer access-token")
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "successfully logged out")
}

func TestLogout_WithoutBody(t *testing.T) {
	a, _, routes := newTestHandler(t)
	user := testUser()

	a.EXPECT().Authenticate(gomock.Any(), "access-token").Return(user, nil)
	a.EXPECT().Logout(gomock.Any(), "access-token", "").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer access-token")
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "successfully logged out")
}

func TestForgotPassword_AlwaysGeneric(t *testing.T) {
	a, _, routes := newTestHandler(t)

	a.EXPECT().ForgotPassword(gomock.Any(), "ghost@example.com").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password", jsonBody(t, map[string]string{
		"email": "ghost@example.com",
	}))
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "if the email is registered")
}

func TestResetPassword(t *testing.T) {
	a, _, routes := newTestHandler(t)

	a.EXPECT().ResetPassword(gomock.Any(), "nonce", "new-password").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/reset-password", jsonBody(t, map[string]string{
		"token":       "nonce",
		"newPassword": "new-password",
	}))
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "password updated successfully")
}

func TestResetPassword_InvalidToken(t *testing.T) {
	a, _, routes := newTestHandler(t)

	a.EXPECT().ResetPassword(gomock.Any(), "bad", "new-password").
		Return(serrors.With(serrors.ErrBadRequest, "invalid reset token"))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/reset-password", jsonBody(t, map[string]string{
		"token":       "bad",
		"newPassword": "new-password",
	}))
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "invalid reset token")
}

func TestMe_SerializesPublicFieldsOnly(t *testing.T) {
	a, _, routes := newTestHandler(t)
	user := testUser()
	user.PasswordHash = "$2a$10$secret"
	user.VerificationToken = "hidden-nonce"

	a.EXPECT().Authenticate(gomock.Any(), "good-token").Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, user.Username, got.Username)
	require.NotContains(t, rec.Body.String(), "secret")
	require.NotContains(t, rec.Body.String(), "hidden-nonce")
}
