package report

import (
	"encoding/json"
	"net/http"
)

type Handler struct{}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Data
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"informe.pdf\"")
	if err := Render(w, input); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}
