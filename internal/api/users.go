package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/myit/inventory/internal/auth"
	"github.com/myit/inventory/internal/model"
	"github.com/myit/inventory/internal/store"
)

// UsersHandler handles user management endpoints (superadmin only).
type UsersHandler struct {
	DB           *sql.DB
	Sessions     *auth.Sessions
	MaxBodyBytes int64
}

type createUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Role     string `json:"role"`
	Password string `json:"password"`
}

// List handles GET /api/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := store.ListUsers(r.Context(), h.DB)
	if err != nil {
		internalError(w, r, "failed to list users", err)
		return
	}
	if users == nil {
		users = []model.User{}
	}
	jsonResponse(w, http.StatusOK, users)
}

// Create handles POST /api/users.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(w, r, h.MaxBodyBytes, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Username == "" || req.Password == "" || req.Role == "" {
		jsonError(w, http.StatusBadRequest, "username, password, and role required")
		return
	}
	if !model.ValidRole(req.Role) {
		jsonError(w, http.StatusBadRequest, "invalid role")
		return
	}

	hash, err := store.HashPassword(req.Password)
	if errors.Is(err, store.ErrPasswordTooLong) {
		jsonError(w, http.StatusBadRequest, "password too long")
		return
	}
	if err != nil {
		internalError(w, r, "failed to hash password", err)
		return
	}

	user, err := store.CreateUser(r.Context(), h.DB, req.Username, hash, req.Role)
	if errors.Is(err, store.ErrUsernameTaken) {
		jsonError(w, http.StatusConflict, "username already exists")
		return
	}
	if err != nil {
		internalError(w, r, "failed to create user", err)
		return
	}

	s, _ := GetSession(r.Context())
	slog.Info("user created", "user", s.Username, "new_user", user.Username, "role", user.Role)
	jsonResponse(w, http.StatusCreated, user)
}

// Update handles PUT /api/users/{id}. A non-empty password replaces the
// current one; an omitted or empty password keeps it.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req updateUserRequest
	if err := decodeJSON(w, r, h.MaxBodyBytes, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !model.ValidRole(req.Role) {
		jsonError(w, http.StatusBadRequest, "invalid role")
		return
	}

	s, _ := GetSession(r.Context())
	if s.UserID == id && req.Role != s.Role {
		jsonError(w, http.StatusBadRequest, "cannot change your own role")
		return
	}

	var hash string
	if req.Password != "" {
		hash, err = store.HashPassword(req.Password)
		if errors.Is(err, store.ErrPasswordTooLong) {
			jsonError(w, http.StatusBadRequest, "password too long")
			return
		}
		if err != nil {
			internalError(w, r, "failed to hash password", err)
			return
		}
	}

	err = store.UpdateUser(r.Context(), h.DB, id, req.Role, hash)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		internalError(w, r, "failed to update user", err)
		return
	}

	h.Sessions.SetRole(id, req.Role)

	slog.Info("user updated", "user", s.Username, "target_id", id, "role", req.Role, "password_changed", hash != "")
	jsonResponse(w, http.StatusOK, map[string]string{"message": "user updated"})
}

// Delete handles DELETE /api/users/{id}.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	s, _ := GetSession(r.Context())
	if s.UserID == id {
		jsonError(w, http.StatusBadRequest, "cannot delete yourself")
		return
	}

	if err := store.DeleteUser(r.Context(), h.DB, id); err != nil {
		internalError(w, r, "failed to delete user", err)
		return
	}

	revoked := h.Sessions.DeleteUser(id)
	slog.Info("user deleted", "user", s.Username, "target_id", id, "sessions_revoked", revoked)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
