package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mstrand/todoapi/internal/auth"
	"github.com/mstrand/todoapi/internal/middleware"
	"github.com/mstrand/todoapi/internal/store"
)

type UserHandler struct {
	auth   *auth.Service
	logger *slog.Logger
}

func NewUserHandler(svc *auth.Service, logger *slog.Logger) *UserHandler {
	return &UserHandler{auth: svc, logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	u, err := h.auth.Register(req.Email, req.Password)
	if err != nil {
		var ve *auth.ValidationError
		switch {
		case errors.As(err, &ve):
			writeJSON(w, http.StatusBadRequest, map[string]any{"errors": ve.Fields})
		case errors.Is(err, store.ErrDuplicateEmail):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email already registered"})
		default:
			h.logger.Error("register user", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to register user"})
		}
		return
	}

	writeJSON(w, http.StatusOK, u.Public())
}

// Login verifies credentials, issues a token, and hands it back in the Auth
// response header alongside the public user body.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	u, err := h.auth.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		h.logger.Error("authenticate user", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to log in"})
		return
	}

	tok, err := h.auth.IssueToken(u)
	if err != nil {
		h.logger.Error("issue token", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to log in"})
		return
	}

	w.Header().Set(middleware.AuthHeader, tok.Token)
	writeJSON(w, http.StatusOK, u.Public())
}

// Logout revokes the token the request authenticated with.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.FromContext(r.Context())
	if !ok || id.Token == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := h.auth.RevokeToken(id.Token); err != nil {
		h.logger.Error("revoke token", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to log out"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
