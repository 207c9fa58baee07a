package handler

import (
	"encoding/json"
	"net/http"

	"github.com/hydroapp/hydro/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func parseDateParam(r *http.Request) (model.Date, error) {
	return model.ParseDate(r.PathValue("date"))
}
