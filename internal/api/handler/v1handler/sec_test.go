package v1handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"calculator/internal/api/handler/v1handler"
	mockauth "calculator/internal/auth/mock"
	mockcalculation "calculator/internal/calculation/mock"
	"calculator/pkg/domain"
	"calculator/pkg/serrors"
)

func newTestHandler(t *testing.T) (*mockauth.MockAuth, *mockcalculation.MockCalculator, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	a := mockauth.NewMockAuth(ctrl)
	c := mockcalculation.NewMockCalculator(ctrl)
	h := v1handler.New(v1handler.Deps{Auth: a, Calculator: c})

	return a, c, h.Routes()
}

func testUser() *domain.User {
	return &domain.User{
		ID:         domain.UserID(uuid.New()),
		Username:   "alice",
		Email:      "alice@example.com",
		IsVerified: true,
		IsActive:   true,
	}
}

func TestWithAuth_MissingToken(t *testing.T) {
	_, _, routes := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"UNAUTHORIZED"`)
}

func TestWithAuth_MalformedHeader(t *testing.T) {
	_, _, routes := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWithAuth_RejectedToken(t *testing.T) {
	a, _, routes := newTestHandler(t)

	a.EXPECT().Authenticate(gomock.Any(), "revoked-token").
		Return(nil, serrors.With(serrors.ErrUnauthorized, "token has been revoked"))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer revoked-token")
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "token has been revoked")
}

func TestWithAuth_ValidTokenReachesHandler(t *testing.T) {
	a, _, routes := newTestHandler(t)
	user := testUser()

	a.EXPECT().Authenticate(gomock.Any(), "good-token").Return(user, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), user.Username)
	// the password hash must never be serialized
	require.NotContains(t, rec.Body.String(), "PasswordHash")
	require.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestWriteError_UnknownErrorIsOpaque(t *testing.T) {
	a, _, routes := newTestHandler(t)

	a.EXPECT().ResendVerification(gomock.Any(), gomock.Any()).
		Return(errors.New("database exploded: secret details"))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/resend-verification",
		jsonBody(t, map[string]string{"email": "alice@example.com"}))
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), `"code":"INTERNAL"`)
	require.NotContains(t, rec.Body.String(), "secret details")
}
