package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hydroapp/hydro/internal/alarm"
	"github.com/hydroapp/hydro/internal/app"
	"github.com/hydroapp/hydro/internal/model"
)

type ReminderHandler struct {
	app    *app.Store
	logger *slog.Logger
}

func NewReminderHandler(store *app.Store, logger *slog.Logger) *ReminderHandler {
	return &ReminderHandler{app: store, logger: logger}
}

// Set handles PUT /api/reminder. Scheduling happens before persistence,
// so a refused schedule (no notification capability) leaves the stored
// reminder untouched and surfaces as 409.
func (h *ReminderHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req model.Reminder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.app.Dispatch(r.Context(), app.SetReminder{Value: &req}); err != nil {
		if errors.Is(err, alarm.ErrNotificationsDisabled) {
			errorJSON(w, http.StatusConflict, "notifications are not configured")
			return
		}
		h.logger.Error("set reminder", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to save reminder")
		return
	}
	writeJSON(w, http.StatusOK, h.app.State())
}

// Delete handles DELETE /api/reminder
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Dispatch(r.Context(), app.SetReminder{Value: nil}); err != nil {
		h.logger.Error("remove reminder", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to remove reminder")
		return
	}
	writeJSON(w, http.StatusOK, h.app.State())
}

// Restart handles POST /api/reminder/restart. Re-arms the persisted
// reminder; scheduled fire times do not survive a process restart.
func (h *ReminderHandler) Restart(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Dispatch(r.Context(), app.RestartReminder{}); err != nil {
		if errors.Is(err, alarm.ErrNotificationsDisabled) {
			errorJSON(w, http.StatusConflict, "notifications are not configured")
			return
		}
		h.logger.Error("restart reminder", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to restart reminder")
		return
	}
	writeJSON(w, http.StatusOK, h.app.State())
}

// Test handles POST /api/reminder/test. Posts the reminder immediately,
// bypassing the goal-celebration suppression.
func (h *ReminderHandler) Test(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Dispatch(r.Context(), app.ShowReminderNotification{Forced: true}); err != nil {
		h.logger.Error("test reminder", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to send test notification")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
