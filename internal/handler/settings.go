package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/hydroapp/hydro/internal/app"
	"github.com/hydroapp/hydro/internal/model"
)

type SettingsHandler struct {
	app    *app.Store
	logger *slog.Logger
}

func NewSettingsHandler(store *app.Store, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{app: store, logger: logger}
}

type goalRequest struct {
	Milliliters model.Milliliters `json:"milliliters"`
}

func validateGoal(goal model.Milliliters) error {
	if goal < model.DailyGoalMin || goal > model.DailyGoalMax {
		return fmt.Errorf("goal must be between %d and %d ml", model.DailyGoalMin, model.DailyGoalMax)
	}
	if goal%model.DailyGoalStep != 0 {
		return fmt.Errorf("goal must be a multiple of %d ml", model.DailyGoalStep)
	}
	return nil
}

// SetGoal handles PUT /api/settings/goal
func (h *SettingsHandler) SetGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := validateGoal(req.Milliliters); err != nil {
		errorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.app.Dispatch(r.Context(), app.SetDailyGoal{Value: req.Milliliters}); err != nil {
		h.logger.Error("set daily goal", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to save goal")
		return
	}
	writeJSON(w, http.StatusOK, h.app.State())
}

type themeRequest struct {
	Theme string `json:"theme"`
}

// SetTheme handles PUT /api/settings/theme. Unknown values fall back to
// the system theme rather than erroring.
func (h *SettingsHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.app.Dispatch(r.Context(), app.SetTheme{Value: model.ParseTheme(req.Theme)}); err != nil {
		h.logger.Error("set theme", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to save theme")
		return
	}
	writeJSON(w, http.StatusOK, h.app.State())
}

type unitRequest struct {
	Unit string `json:"unit"`
}

// SetUnit handles PUT /api/settings/unit
func (h *SettingsHandler) SetUnit(w http.ResponseWriter, r *http.Request) {
	var req unitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.app.Dispatch(r.Context(), app.SetLiquidUnit{Value: model.ParseLiquidUnit(req.Unit)}); err != nil {
		h.logger.Error("set liquid unit", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to save unit")
		return
	}
	writeJSON(w, http.StatusOK, h.app.State())
}

type cupsRequest struct {
	Cups []model.Cup `json:"cups"`
}

// SetCups handles PUT /api/settings/cups
func (h *SettingsHandler) SetCups(w http.ResponseWriter, r *http.Request) {
	var req cupsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	for _, cup := range req.Cups {
		if cup.Milliliters <= 0 {
			errorJSON(w, http.StatusBadRequest, "cup sizes must be positive")
			return
		}
	}

	if err := h.app.Dispatch(r.Context(), app.SetSelectedCups{Value: req.Cups}); err != nil {
		h.logger.Error("set selected cups", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to save cups")
		return
	}
	writeJSON(w, http.StatusOK, h.app.State())
}

// DeleteAll handles DELETE /api/data. Irreversible; the client confirms
// before calling.
func (h *SettingsHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Dispatch(r.Context(), app.DeleteAll{}); err != nil {
		h.logger.Error("delete all data", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to delete data")
		return
	}
	writeJSON(w, http.StatusOK, h.app.State())
}
