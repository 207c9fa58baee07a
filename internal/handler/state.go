package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hydroapp/hydro/internal/app"
)

type StateHandler struct {
	app    *app.Store
	logger *slog.Logger
}

func NewStateHandler(store *app.Store, logger *slog.Logger) *StateHandler {
	return &StateHandler{app: store, logger: logger}
}

// Get handles GET /api/state
func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.app.State())
}

type foregroundRequest struct {
	InForeground bool `json:"in_foreground"`
}

// SetForeground handles PUT /api/state/foreground. Clients report their
// visibility so the goal celebration push is suppressed while one of
// them is on screen.
func (h *StateHandler) SetForeground(w http.ResponseWriter, r *http.Request) {
	var req foregroundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.app.Dispatch(r.Context(), app.SetAppInForeground{Value: req.InForeground}); err != nil {
		h.logger.Error("set foreground", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to update foreground state")
		return
	}
	writeJSON(w, http.StatusOK, h.app.State())
}
