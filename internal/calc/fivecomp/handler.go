package fivecomp

import (
	"encoding/json"
	"net/http"

	"github.com/idalopban/ComVida/internal/calc/anthro"
)

type Handler struct{}

// Calc answers 200 even when a stage aborts: stage failures travel in
// Result.Error so the client can show the corrective message. Negative
// sites are rejected with 400.
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	m := anthro.Measurements{Skinfolds: input.Skinfolds, Diameters: input.Diameters}
	if err := m.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Calculate(input))
}
