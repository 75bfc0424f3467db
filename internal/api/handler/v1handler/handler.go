// Package v1handler implements the HTTP handlers for version 1 of the API:
// the auth endpoints under /api/auth and the calculation endpoints under
// /api/calculations.
package v1handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"calculator/internal/auth"
	"calculator/internal/calculation"
	"calculator/pkg/logger"
	"calculator/pkg/serrors"
)

// Deps carries the services the handlers dispatch to.
type Deps struct {
	Auth       auth.Auth
	Calculator calculation.Calculator
}

// Handler exposes the v1 routes.
type Handler struct {
	deps Deps
}

// New creates a Handler with the given dependencies.
func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Routes returns the v1 route table. Authenticated routes are wrapped with the
// bearer-token middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("GET /api/auth/verify-email", h.VerifyEmail)
	mux.HandleFunc("POST /api/auth/resend-verification", h.ResendVerification)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Refresh)
	mux.HandleFunc("POST /api/auth/forgot-password", h.ForgotPassword)
	mux.HandleFunc("POST /api/auth/reset-password", h.ResetPassword)
	mux.Handle("POST /api/auth/logout", h.WithAuth(http.HandlerFunc(h.Logout)))
	mux.Handle("GET /api/auth/me", h.WithAuth(http.HandlerFunc(h.Me)))

	mux.Handle("POST /api/calculations", h.WithAuth(http.HandlerFunc(h.CreateCalculation)))
	mux.Handle("GET /api/calculations", h.WithAuth(http.HandlerFunc(h.ListCalculations)))
	mux.Handle("GET /api/calculations/stats/summary", h.WithAuth(http.HandlerFunc(h.CalculationStats)))
	mux.Handle("GET /api/calculations/{id}", h.WithAuth(http.HandlerFunc(h.GetCalculation)))
	mux.Handle("PUT /api/calculations/{id}", h.WithAuth(http.HandlerFunc(h.UpdateCalculation)))
	mux.Handle("DELETE /api/calculations/{id}", h.WithAuth(http.HandlerFunc(h.DeleteCalculation)))

	return mux
}

// errorBody is the JSON error envelope returned by every endpoint.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFromKind maps a semantic error kind to an HTTP status code.
func statusFromKind(k serrors.Kind) int {
	switch k {
	case serrors.ErrBadRequest:
		return http.StatusBadRequest
	case serrors.ErrUnauthorized:
		return http.StatusUnauthorized
	case serrors.ErrForbidden:
		return http.StatusForbidden
	case serrors.ErrNotFound:
		return http.StatusNotFound
	case serrors.ErrConflict:
		return http.StatusConflict
	case serrors.ErrRateLimited:
		return http.StatusTooManyRequests
	case serrors.ErrTimeout:
		return http.StatusGatewayTimeout
	case serrors.ErrUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes the JSON error envelope for err. Semantic errors keep
// their kind and message; anything else is reported as a generic internal
// error so no detail leaks to clients.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var serr *serrors.Error
	if errors.As(err, &serr) && serr.Kind() != nil {
		status := statusFromKind(serr.Kind())
		if status >= http.StatusInternalServerError {
			logger.Error(r.Context(), "request failed", zap.Error(err))
		}
		msg := serr.Message()
		if msg == "" {
			msg = serr.Kind().Error()
		}
		writeJSON(w, r, status, errorBody{Code: serr.Kind().Error(), Message: msg})

		return
	}

	logger.Error(r.Context(), "request failed", zap.Error(err))
	writeJSON(w, r, http.StatusInternalServerError, errorBody{
		Code:    serrors.ErrInternal.Error(),
		Message: "internal server error",
	})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error(r.Context(), "could not encode response", zap.Error(err))
	}
}

// readJSON decodes the request body into dst, rejecting unknown fields.
func readJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	return nil
}

// messageBody is the JSON envelope for endpoints that only report an outcome.
type messageBody struct {
	Message string `json:"message"`
}

func message(format string, args ...any) messageBody {
	return messageBody{Message: fmt.Sprintf(format, args...)}
}
