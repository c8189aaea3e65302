// Package admin manages practitioner accounts.
package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/idalopban/ComVida/internal/auth"
	"github.com/idalopban/ComVida/internal/repo"
	"go.uber.org/zap"
)

const MinPasswordLength = 6

type Handler struct {
	Repo   repo.UserRepository
	Logger *zap.Logger
}

type CreateUserRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Repo.ListUsers(r.Context())
	if err != nil {
		h.Logger.Error("list users failed", zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Role == "" {
		req.Role = repo.RoleUser
	}
	if req.Login == "" || req.Password == "" {
		http.Error(w, "Login and password required", http.StatusBadRequest)
		return
	}
	if len(req.Password) < MinPasswordLength {
		http.Error(w, "Password too short", http.StatusBadRequest)
		return
	}
	if req.Role != repo.RoleUser && req.Role != repo.RoleAdmin {
		http.Error(w, "Unknown role", http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}
	id, err := h.Repo.CreateUser(r.Context(), req.Login, hash, req.Role)
	if errors.Is(err, repo.ErrDuplicate) {
		http.Error(w, "User already exists", http.StatusConflict)
		return
	}
	if err != nil {
		h.Logger.Error("create user failed", zap.String("login", req.Login), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	s, _ := auth.SessionFrom(r.Context())
	h.Logger.Info("user created", zap.String("login", req.Login), zap.String("role", req.Role), zap.String("by", s.Login))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(repo.User{ID: id, Login: req.Login, Role: req.Role})
}

// DeleteUser removes an account. The built-in admin and the caller's own
// account cannot be deleted.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	login := mux.Vars(r)["login"]
	s, _ := auth.SessionFrom(r.Context())
	if login == auth.DefaultAdminLogin || login == s.Login {
		http.Error(w, "This account cannot be deleted", http.StatusBadRequest)
		return
	}

	err := h.Repo.DeleteUser(r.Context(), login)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Error("delete user failed", zap.String("login", login), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	h.Logger.Info("user deleted", zap.String("login", login), zap.String("by", s.Login))
	w.WriteHeader(http.StatusNoContent)
}
