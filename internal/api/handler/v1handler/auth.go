package v1handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"calculator/internal/auth"
	"calculator/pkg/domain"
	"calculator/pkg/serrors"
)

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// sessionResponse is the token pair returned by login and refresh.
type sessionResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	TokenType    string      `json:"tokenType"`
	ExpiresAt    time.Time   `json:"expiresAt"`
	User         domain.User `json:"user"`
}

func newSessionResponse(session *auth.Session) sessionResponse {
	return sessionResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		TokenType:    "bearer",
		ExpiresAt:    session.ExpiresAt,
		User:         session.User,
	}
}

// Register creates a new account and queues the verification email.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readJSON(r, &req); err != nil {
		WriteError(w, r, err)

		return
	}

	user, err := h.deps.Auth.Register(r.Context(), auth.RegisterParams{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		WriteError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusCreated, user)
}

// VerifyEmail consumes the verification link's token query parameter.
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		WriteError(w, r, serrors.With(serrors.ErrBadRequest, "missing token"))

		return
	}

	user, err := h.deps.Auth.VerifyEmail(r.Context(), token)
	if err != nil {
		WriteError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusOK, user)
}

// ResendVerification queues a new verification email. The response is the
// same whether or not the address is registered.
func (h *Handler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := readJSON(r, &req); err != nil {
		WriteError(w, r, err)

		return
	}

	if err := h.deps.Auth.ResendVerification(r.Context(), req.Email); err != nil {
		WriteError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusOK, message("if the email is registered, a verification link has been sent"))
}

// Login exchanges credentials for a token pair.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		WriteError(w, r, err)

		return
	}

	session, err := h.deps.Auth.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		WriteError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusOK, newSessionResponse(session))
}

// Refresh rotates a refresh token into a new token pair.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := readJSON(r, &req); err != nil {
		WriteError(w, r, err)

		return
	}

	session, err := h.deps.Auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		WriteError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusOK, newSessionResponse(session))
}

// Logout revokes the presented access and refresh tokens. The body is
// optional; without one only the access token is revoked.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if err := readJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, r, err)

		return
	}

	if err := h.deps.Auth.Logout(r.Context(), bearerToken(r), req.RefreshToken); err != nil {
		WriteError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusOK, message("successfully logged out"))
}

// ForgotPassword queues a password-reset email. The response is the same
// whether or not the address is registered.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := readJSON(r, &req); err != nil {
		WriteError(w, r, err)

		return
	}

	if err := h.deps.Auth.ForgotPassword(r.Context(), req.Email); err != nil {
		WriteError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusOK, message("if the email is registered, a password reset link has been sent"))
}

// ResetPassword consumes a reset token and replaces the password.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := readJSON(r, &req); err != nil {
		WriteError(w, r, err)

		return
	}

	if err := h.deps.Auth.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		WriteError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusOK, message("password updated successfully"))
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, GetUserFromContext(r.Context()))
}
