package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/myit/inventory/internal/auth"
	"github.com/myit/inventory/internal/store"
)

// AuthHandler handles login and logout.
type AuthHandler struct {
	DB           *sql.DB
	Sessions     *auth.Sessions
	MaxBodyBytes int64
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  auth.Session `json:"user"`
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, h.MaxBodyBytes, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" {
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	user, err := store.GetUserByUsername(r.Context(), h.DB, req.Username)
	if err != nil {
		internalError(w, r, "failed to look up user", err)
		return
	}
	// Same answer for unknown users and wrong passwords.
	if user == nil || !store.CheckPassword(user.PasswordHash, req.Password) {
		slog.Warn("login failed", "username", req.Username, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	session := auth.NewSession(user)
	token, err := h.Sessions.Create(session)
	if err != nil {
		internalError(w, r, "failed to create session", err)
		return
	}

	slog.Info("user logged in", "user", user.Username, "role", user.Role)
	jsonResponse(w, http.StatusOK, loginResponse{Token: token, User: session})
}

// Logout handles POST /api/logout. It succeeds whether or not the token
// named a live session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)
	if s, ok := h.Sessions.Lookup(token); ok {
		h.Sessions.Delete(token)
		slog.Info("user logged out", "user", s.Username)
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}
