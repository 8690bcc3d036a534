package httpapi

import (
	"errors"
	"net/http"
	"time"

	"animedb.org/internal/audit"
	"animedb.org/internal/auth"
)

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message   string          `json:"message"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      auth.PublicUser `json:"user"`
}

func (a *API) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	user, err := a.auth.Signup(r.Context(), auth.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrMissingFields):
		writeError(w, r, http.StatusBadRequest, "username, email and password are required")
		return
	case errors.Is(err, auth.ErrDuplicate):
		writeError(w, r, http.StatusBadRequest, "email or username already registered")
		return
	default:
		writeError(w, r, http.StatusInternalServerError, "signup failed")
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.signup", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "signup successful, you can now log in",
	})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := a.auth.Login(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrMissingFields):
		writeError(w, r, http.StatusBadRequest, "email and password are required")
		return
	case errors.Is(err, auth.ErrUserNotFound):
		writeError(w, r, http.StatusBadRequest, "user not found")
		return
	case errors.Is(err, auth.ErrInvalidPassword):
		writeError(w, r, http.StatusBadRequest, "invalid password")
		return
	default:
		writeError(w, r, http.StatusInternalServerError, "login failed")
		return
	}

	_ = audit.LogEvent(r.Context(), "auth.token.issued", map[string]any{
		"user_id":    res.User.ID,
		"role":       string(res.User.Role),
		"expires_at": res.ExpiresAt.Format(time.RFC3339),
	})

	writeJSON(w, http.StatusOK, loginResponse{
		Message:   "login successful",
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      res.User,
	})
}
