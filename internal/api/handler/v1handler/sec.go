package v1handler

import (
	"context"
	"net/http"
	"strings"

	"calculator/pkg/domain"
	"calculator/pkg/serrors"
)

// userCtxKey is the private context key under which the authenticated user is
// stored by the auth middleware.
type userCtxKey struct{}

// GetUserFromContext returns the authenticated user stored by WithAuth, or nil
// when the request was not authenticated.
func GetUserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userCtxKey{}).(*domain.User)

	return user
}

// GetUserIDFromContext returns the ID of the authenticated user. It must only
// be called from handlers behind WithAuth.
func GetUserIDFromContext(ctx context.Context) domain.UserID {
	if user := GetUserFromContext(ctx); user != nil {
		return user.ID
	}

	return domain.UserID{}
}

// bearerToken extracts the token from the Authorization header, or "" when the
// header is missing or not a bearer scheme.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}

	return header[len(prefix):]
}

// WithAuth authenticates the request's bearer token and stores the resolved
// user in the request context. Requests with a missing, invalid, revoked or
// disabled-account token are rejected.
func (h *Handler) WithAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			WriteError(w, r, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

			return
		}

		user, err := h.deps.Auth.Authenticate(r.Context(), token)
		if err != nil {
			WriteError(w, r, err)

			return
		}

		ctx := context.WithValue(r.Context(), userCtxKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
