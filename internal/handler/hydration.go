package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hydroapp/hydro/internal/app"
	"github.com/hydroapp/hydro/internal/model"
)

type HydrationHandler struct {
	app    *app.Store
	logger *slog.Logger
}

func NewHydrationHandler(store *app.Store, logger *slog.Logger) *HydrationHandler {
	return &HydrationHandler{app: store, logger: logger}
}

type addHydrationRequest struct {
	Milliliters model.Milliliters `json:"milliliters"`
}

// Add handles POST /api/hydration. Every call appends a new event, so a
// doubled tap records a doubled intake; undo is ResetToday, not dedupe.
func (h *HydrationHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addHydrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Milliliters <= 0 {
		errorJSON(w, http.StatusBadRequest, "milliliters must be positive")
		return
	}

	if err := h.app.Dispatch(r.Context(), app.AddHydration{Value: req.Milliliters}); err != nil {
		h.logger.Error("add hydration", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to record hydration")
		return
	}
	writeJSON(w, http.StatusCreated, h.app.State())
}

// ResetToday handles DELETE /api/hydration/today
func (h *HydrationHandler) ResetToday(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Dispatch(r.Context(), app.ResetToday{}); err != nil {
		h.logger.Error("reset today", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to reset today")
		return
	}
	writeJSON(w, http.StatusOK, h.app.State())
}

// SeedOnboarding handles POST /api/onboarding/seed
func (h *HydrationHandler) SeedOnboarding(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Dispatch(r.Context(), app.SetHydrationForOnboarding{}); err != nil {
		h.logger.Error("seed onboarding", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to seed onboarding data")
		return
	}
	writeJSON(w, http.StatusOK, h.app.State())
}

// CompleteOnboarding handles POST /api/onboarding/complete. Marks the
// walkthrough done and wipes its demonstration data.
func (h *HydrationHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	if err := h.app.Dispatch(r.Context(), app.SetOnboardingShown{}); err != nil {
		h.logger.Error("complete onboarding", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to complete onboarding")
		return
	}
	writeJSON(w, http.StatusOK, h.app.State())
}
