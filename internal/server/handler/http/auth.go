// Package http provides the HTTP handlers and routing of the sandbox record
// service.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/mouthpiecer/internal/models"
	"github.com/atinyakov/mouthpiecer/internal/service"
	"github.com/atinyakov/mouthpiecer/internal/wire"
)

// AuthService defines the account operations required by the HTTP handlers.
type AuthService interface {
	// Register stores a new account.
	Register(ctx context.Context, u models.NewUser) (*models.User, error)
	// Login checks credentials and opens a session.
	Login(ctx context.Context, email, password string) (models.Session, *models.User, error)
}

// AuthHandler handles login and account creation requests.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Fields maps user fields to their wire keys.
	Fields wire.FieldMap
}

// Session handles login requests. It expects a JSON body with email and
// password and answers with the session token of the account.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	var req wire.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	sess, user, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var resp wire.SessionResponse
	resp.Session.User = wire.SessionUser{ID: user.ID, Email: user.Email, Token: sess.Token}
	writeJSON(w, http.StatusOK, resp)
}

// CreateUser handles account creation requests carrying a user record.
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var rec map[string]any
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	nu, err := h.Fields.DecodeUser(rec)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	user, err := h.AuthService.Register(r.Context(), nu)
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, service.ErrUserExists):
		http.Error(w, "user already exists", http.StatusConflict)
		return
	case err != nil:
		http.Error(w, "failed to save user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":                user.ID,
		h.Fields.UserEmail:  user.Email,
		h.Fields.UserStatus: user.Status,
		h.Fields.UserRole:   user.Role,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
