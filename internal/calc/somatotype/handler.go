package somatotype

import (
	"encoding/json"
	"net/http"

	"github.com/idalopban/ComVida/internal/calc/anthro"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if input.WeightKg <= 0 || input.HeightCm <= 0 {
		http.Error(w, "weight and height must be positive", http.StatusUnprocessableEntity)
		return
	}
	m := anthro.Measurements{Skinfolds: input.Skinfolds, Circumferences: input.Circumferences, Diameters: input.Diameters}
	if err := m.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Calculate(input))
}
