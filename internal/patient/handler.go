package patient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/idalopban/ComVida/internal/auth"
	"github.com/idalopban/ComVida/internal/calc/anthro"
	"github.com/idalopban/ComVida/internal/calc/energy"
	"github.com/idalopban/ComVida/internal/calc/macros"
	"github.com/idalopban/ComVida/internal/calc/report"
	"github.com/idalopban/ComVida/internal/diet"
	"github.com/idalopban/ComVida/internal/export"
	"github.com/idalopban/ComVida/internal/repo"
	"go.uber.org/zap"
)

// FoodLookup resolves a food code when items are added to a diet.
type FoodLookup interface {
	Get(ctx context.Context, code string) (repo.Food, error)
}

type Handler struct {
	Service *Service
	Foods   FoodLookup
	Logger  *zap.Logger
}

type SaveRequest struct {
	Name            string          `json:"nombre"`
	Age             int             `json:"edad"`
	Sex             anthro.Sex      `json:"sexo"`
	WeightKg        float64         `json:"peso"`
	HeightCm        float64         `json:"talla_cm"`
	Activity        energy.Activity `json:"actividad"`
	Race            anthro.Race     `json:"raza"`
	Formula         energy.Formula  `json:"formula_get"`
	ClinicalHistory string          `json:"historia_clinica"`
}

type SaveResponse struct {
	Slug    string `json:"slug"`
	Record  Record `json:"record"`
	Warning string `json:"warning,omitempty"`
}

type AddItemRequest struct {
	Code     string        `json:"code"`
	Grams    float64       `json:"grams"`
	MealTime diet.MealTime `json:"meal_time"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func ownerID(r *http.Request) (int, bool) {
	s, ok := auth.SessionFrom(r.Context())
	if !ok || s.UserID == 0 {
		return 0, false
	}
	return s.UserID, true
}

// load resolves the owner and the {slug} record, answering the error itself.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (int, Record, bool) {
	owner, ok := ownerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return 0, Record{}, false
	}
	slug := mux.Vars(r)["slug"]
	rec, err := h.Service.Load(r.Context(), owner, slug)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Patient not found", http.StatusNotFound)
		return 0, Record{}, false
	}
	if err != nil {
		h.Logger.Error("load patient failed", zap.Int("owner_id", owner), zap.String("slug", slug), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return 0, Record{}, false
	}
	return owner, rec, true
}

func (h *Handler) store(w http.ResponseWriter, r *http.Request, owner int, rec Record) (string, bool) {
	slug, err := h.Service.Store(r.Context(), owner, rec)
	if err != nil {
		h.Logger.Error("save patient failed", zap.Int("owner_id", owner), zap.String("name", rec.Name), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return "", false
	}
	return slug, true
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	list, err := h.Service.List(r.Context(), owner)
	if err != nil {
		h.Logger.Error("list patients failed", zap.Int("owner_id", owner), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Save creates a patient or updates the one with the same slug. Measurements
// and diet of an existing record are kept; its composition is recomputed for
// the new subject data.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if Slug(req.Name) == "" {
		http.Error(w, ErrNameRequired.Error(), http.StatusBadRequest)
		return
	}
	subj := anthro.Subject{Sex: req.Sex, Age: req.Age, WeightKg: req.WeightKg, HeightCm: req.HeightCm}
	if err := subj.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.Service.Load(r.Context(), owner, Slug(req.Name))
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		h.Logger.Error("load patient failed", zap.Int("owner_id", owner), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	status := http.StatusOK
	if errors.Is(err, repo.ErrNotFound) {
		status = http.StatusCreated
	}

	rec.Name = req.Name
	rec.Age = req.Age
	rec.Sex = req.Sex
	rec.WeightKg = req.WeightKg
	rec.HeightCm = req.HeightCm
	rec.Activity = req.Activity
	rec.Race = req.Race
	rec.Formula = req.Formula
	rec.ClinicalHistory = req.ClinicalHistory
	rec, warning := Refresh(rec)

	slug, ok := h.store(w, r, owner, rec)
	if !ok {
		return
	}
	writeJSON(w, status, SaveResponse{Slug: slug, Record: rec, Warning: warning})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if _, rec, ok := h.load(w, r); ok {
		writeJSON(w, http.StatusOK, rec)
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	err := h.Service.Delete(r.Context(), owner, mux.Vars(r)["slug"])
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Patient not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Error("delete patient failed", zap.Int("owner_id", owner), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Measurements runs the body composition pipeline over a new session.
func (h *Handler) Measurements(w http.ResponseWriter, r *http.Request) {
	owner, rec, ok := h.load(w, r)
	if !ok {
		return
	}
	var m anthro.Measurements
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := m.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec = Assess(rec, m)
	if _, ok := h.store(w, r, owner, rec); !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) AddDietItem(w http.ResponseWriter, r *http.Request) {
	owner, rec, ok := h.load(w, r)
	if !ok {
		return
	}
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	f, err := h.Foods.Get(r.Context(), req.Code)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Food not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Error("food lookup failed", zap.String("code", req.Code), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	item, err := diet.NewItem(f, req.Grams, req.MealTime)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec.Diet = append(rec.Diet, item)
	if _, ok := h.store(w, r, owner, rec); !ok {
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) RemoveDietItem(w http.ResponseWriter, r *http.Request) {
	owner, rec, ok := h.load(w, r)
	if !ok {
		return
	}
	plan, err := diet.Remove(rec.Diet, mux.Vars(r)["item"])
	if err != nil {
		http.Error(w, "Diet item not found", http.StatusNotFound)
		return
	}
	rec.Diet = plan
	if _, ok := h.store(w, r, owner, rec); !ok {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ClearDiet(w http.ResponseWriter, r *http.Request) {
	owner, rec, ok := h.load(w, r)
	if !ok {
		return
	}
	rec.Diet = []diet.Item{}
	if _, ok := h.store(w, r, owner, rec); !ok {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetSplit stores the desired carbohydrate/protein percentages.
func (h *Handler) SetSplit(w http.ResponseWriter, r *http.Request) {
	owner, rec, ok := h.load(w, r)
	if !ok {
		return
	}
	var req struct {
		CarbsPct   float64 `json:"carbs_pct"`
		ProteinPct float64 `json:"protein_pct"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.CarbsPct < 0 || req.ProteinPct < 0 || req.CarbsPct > 100 || req.ProteinPct > 100 {
		http.Error(w, "percentages must be within 0-100", http.StatusBadRequest)
		return
	}
	s := macros.NewSplit(req.CarbsPct, req.ProteinPct)
	rec.MacroSplit = &s
	if _, ok := h.store(w, r, owner, rec); !ok {
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// splitFor takes ?carbs= and ?protein= over the stored split.
func splitFor(r *http.Request, rec Record) macros.Split {
	s := rec.Split()
	q := r.URL.Query()
	carbs, cErr := strconv.ParseFloat(q.Get("carbs"), 64)
	protein, pErr := strconv.ParseFloat(q.Get("protein"), 64)
	if cErr == nil || pErr == nil {
		if cErr != nil {
			carbs = s.CarbsPct
		}
		if pErr != nil {
			protein = s.ProteinPct
		}
		s = macros.NewSplit(carbs, protein)
	}
	return s
}

func (h *Handler) DietSummary(w http.ResponseWriter, r *http.Request) {
	_, rec, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, diet.Summarize(rec.Diet, rec.Evaluation.TotalKcal, splitFor(r, rec)))
}

func fileSlug(rec Record) string {
	return Slug(rec.Name)
}

func (h *Handler) ExportDiet(w http.ResponseWriter, r *http.Request) {
	_, rec, ok := h.load(w, r)
	if !ok {
		return
	}
	b, err := export.DietWorkbook(rec.Diet, diet.Summarize(rec.Diet, rec.Evaluation.TotalKcal, splitFor(r, rec)))
	if err != nil {
		h.Logger.Error("diet export failed", zap.String("patient", rec.Name), zap.Error(err))
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"dieta_%s.xlsx\"", fileSlug(rec)))
	w.Write(b)
}

func (h *Handler) ExportEvaluation(w http.ResponseWriter, r *http.Request) {
	_, rec, ok := h.load(w, r)
	if !ok {
		return
	}
	b, err := export.CompositionWorkbook(export.Composition{
		Name:         rec.Name,
		Age:          rec.Age,
		Sex:          rec.Sex,
		WeightKg:     rec.WeightKg,
		HeightCm:     rec.HeightCm,
		Race:         rec.Race,
		BMI:          rec.Evaluation.BMI,
		BMILabel:     rec.Evaluation.BMILabel,
		TotalKcal:    rec.Evaluation.TotalKcal,
		Formula:      rec.Formula,
		TwoComp:      rec.Composition.TwoComp,
		FiveComp:     rec.Composition.FiveComp,
		Somatotype:   rec.Composition.Somatotype,
		Measurements: rec.Measurements,
	})
	if err != nil {
		h.Logger.Error("evaluation export failed", zap.String("patient", rec.Name), zap.Error(err))
		http.Error(w, "Export error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"evaluacion_%s.xlsx\"", fileSlug(rec)))
	w.Write(b)
}

func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	_, rec, ok := h.load(w, r)
	if !ok {
		return
	}
	s, _ := auth.SessionFrom(r.Context())
	data := report.Data{
		Patient:      rec.Name,
		Practitioner: s.Login,
		Sex:          string(rec.Sex),
		Age:          rec.Age,
		WeightKg:     rec.WeightKg,
		HeightCm:     rec.HeightCm,
		Activity:     string(rec.Activity),
		Formula:      string(rec.Formula),
		TotalKcal:    rec.Evaluation.TotalKcal,
		TwoComp:      rec.Composition.TwoComp,
		FiveComp:     rec.Composition.FiveComp,
		Somatotype:   rec.Composition.Somatotype,
		Notes:        rec.ClinicalHistory,
	}
	data.BMI.BMI = rec.Evaluation.BMI
	data.BMI.Label = rec.Evaluation.BMILabel

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"informe_%s.pdf\"", fileSlug(rec)))
	if err := report.Render(w, data); err != nil {
		h.Logger.Error("report failed", zap.String("patient", rec.Name), zap.Error(err))
		http.Error(w, "Report generation error", http.StatusInternalServerError)
	}
}
