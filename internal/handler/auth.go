package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hydroapp/hydro/internal/auth"
)

type AuthHandler struct {
	auth   *auth.Service
	logger *slog.Logger
}

func NewAuthHandler(svc *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: svc, logger: logger}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.auth.CheckPassword(req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			errorJSON(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error("check password", "error", err)
		errorJSON(w, http.StatusInternalServerError, "login failed")
		return
	}

	if err := h.auth.SetCookie(w); err != nil {
		h.logger.Error("issue session", "error", err)
		errorJSON(w, http.StatusInternalServerError, "login failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
