package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/hydroapp/hydro/internal/model"
	"github.com/hydroapp/hydro/internal/store"
)

const historyPageSize = 20

type HistoryHandler struct {
	days   *store.DayStore
	loc    *time.Location
	logger *slog.Logger
}

func NewHistoryHandler(days *store.DayStore, loc *time.Location, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{days: days, loc: loc, logger: logger}
}

// List handles GET /api/history?before=YYYY-MM-DD&page_size=n. Pages run
// strictly backwards from the cursor; the default cursor is tomorrow so
// the first page includes today.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	before := model.Today(h.loc).AddDays(1)
	if param := r.URL.Query().Get("before"); param != "" {
		parsed, err := model.ParseDate(param)
		if err != nil {
			errorJSON(w, http.StatusBadRequest, "invalid before date")
			return
		}
		before = parsed
	}

	pageSize := historyPageSize
	if param := r.URL.Query().Get("page_size"); param != "" {
		n, err := strconv.Atoi(param)
		if err != nil || n <= 0 || n > 100 {
			errorJSON(w, http.StatusBadRequest, "invalid page_size")
			return
		}
		pageSize = n
	}

	days, err := h.days.Days(before, pageSize)
	if err != nil {
		h.logger.Error("list history", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to list history")
		return
	}
	if days == nil {
		days = []model.Day{}
	}
	writeJSON(w, http.StatusOK, days)
}

// Get handles GET /api/history/{date}
func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid date")
		return
	}

	day, err := h.days.Day(date)
	if err != nil {
		h.logger.Error("get day", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to get day")
		return
	}
	if day == nil {
		errorJSON(w, http.StatusNotFound, "no record for that date")
		return
	}
	writeJSON(w, http.StatusOK, day)
}

// Delete handles DELETE /api/history/{date}
func (h *HistoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateParam(r)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid date")
		return
	}

	if err := h.days.Delete(date); err != nil {
		h.logger.Error("delete day", "error", err)
		errorJSON(w, http.StatusInternalServerError, "failed to delete day")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
