package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"calculator/pkg/controller"
	"calculator/pkg/logger"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func TestWithLogger_GeneratesRequestID(t *testing.T) {
	var gotID any
	h := controller.WithLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Context().Value(controller.RequestIDKey)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.NotNil(t, gotID)
	require.NotEmpty(t, gotID.(string))
}

func TestWithLogger_PropagatesIncomingRequestID(t *testing.T) {
	var gotID any
	h := controller.WithLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Context().Value(controller.RequestIDKey)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-Id", "req-42")

	h.ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, "req-42", gotID)
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	require.Equal(t, "10.0.0.1", controller.GetClientIP(req))

	req.Header.Set("X-Real-IP", "10.0.0.2")
	require.Equal(t, "10.0.0.2", controller.GetClientIP(req))

	req.Header.Set("X-Forwarded-For", "10.0.0.3, 10.0.0.4")
	require.Equal(t, "10.0.0.3", controller.GetClientIP(req))
}
