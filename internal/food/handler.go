package food

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/idalopban/ComVida/internal/repo"
	"go.uber.org/zap"
)

type Handler struct {
	Service *Service
	Logger  *zap.Logger
}

// Search serves GET /foods?q=arroz&limit=20.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	foods, err := h.Service.Search(r.Context(), q, limit)
	if err != nil {
		h.Logger.Error("food search failed", zap.String("q", q), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(foods)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	f, err := h.Service.Get(r.Context(), code)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Food not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Error("food lookup failed", zap.String("code", code), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(f)
}
