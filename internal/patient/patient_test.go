package patient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/idalopban/ComVida/internal/auth"
	"github.com/idalopban/ComVida/internal/calc/anthro"
	"github.com/idalopban/ComVida/internal/calc/energy"
	"github.com/idalopban/ComVida/internal/diet"
	"github.com/idalopban/ComVida/internal/export"
	"github.com/idalopban/ComVida/internal/nutrient"
	"github.com/idalopban/ComVida/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type key struct {
	owner int
	slug  string
}

type fakeStore struct {
	rows map[key]repo.PatientRow
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[key]repo.PatientRow{}}
}

func (f *fakeStore) ListPatients(_ context.Context, owner int) ([]repo.PatientSummary, error) {
	out := []repo.PatientSummary{}
	for k, row := range f.rows {
		if k.owner == owner {
			out = append(out, repo.PatientSummary{Slug: row.Slug, Name: row.Name, UpdatedAt: row.UpdatedAt})
		}
	}
	return out, nil
}

func (f *fakeStore) GetPatient(_ context.Context, owner int, slug string) (repo.PatientRow, error) {
	row, ok := f.rows[key{owner, slug}]
	if !ok {
		return repo.PatientRow{}, repo.ErrNotFound
	}
	return row, nil
}

func (f *fakeStore) SavePatient(_ context.Context, owner int, slug, name string, data []byte) (int, error) {
	id := len(f.rows) + 1
	if row, ok := f.rows[key{owner, slug}]; ok {
		id = row.ID
	}
	f.rows[key{owner, slug}] = repo.PatientRow{ID: id, OwnerID: owner, Slug: slug, Name: name, Data: data, UpdatedAt: time.Now()}
	return id, nil
}

func (f *fakeStore) DeletePatient(_ context.Context, owner int, slug string) error {
	if _, ok := f.rows[key{owner, slug}]; !ok {
		return repo.ErrNotFound
	}
	delete(f.rows, key{owner, slug})
	return nil
}

type fakeFoods map[string]repo.Food

func (f fakeFoods) Get(_ context.Context, code string) (repo.Food, error) {
	food, ok := f[code]
	if !ok {
		return repo.Food{}, repo.ErrNotFound
	}
	return food, nil
}

func referenceSkinfolds() anthro.Skinfolds {
	return anthro.Skinfolds{
		Triceps:     anthro.Ptr(10),
		Biceps:      anthro.Ptr(5),
		Subscapular: anthro.Ptr(12),
		Suprailiac:  anthro.Ptr(8),
	}
}

func referenceRecord() Record {
	return Record{
		Name:     "Juan Perez",
		Age:      25,
		Sex:      anthro.Male,
		WeightKg: 70,
		HeightCm: 170,
		Activity: energy.ActivityModerate,
		Formula:  energy.FormulaMifflin,
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "juan_pérez", Slug("Juan Pérez"))
	assert.Equal(t, "dra_ana_m_lópez", Slug("  Dra. Ana M. López "))
	assert.Equal(t, "", Slug("   "))
}

func TestEvaluate(t *testing.T) {
	rec, warning := Evaluate(referenceRecord())
	assert.Empty(t, warning)
	assert.InDelta(t, 24.2215, rec.Evaluation.BMI, 1e-3)
	assert.Equal(t, "Peso Normal", rec.Evaluation.BMILabel)
	assert.InDelta(t, energy.TDEE(anthro.Male, 70, 170, 25, energy.ActivityModerate, energy.FormulaMifflin, 0), rec.Evaluation.TotalKcal, 1e-9)
	assert.Greater(t, rec.Evaluation.TotalKcal, 0.0)
}

func TestEvaluate_CunninghamWithoutComposition(t *testing.T) {
	r := referenceRecord()
	r.Formula = energy.FormulaCunningham
	rec, warning := Evaluate(r)
	assert.Equal(t, CunninghamWithoutLeanMass, warning)
	assert.Equal(t, 0.0, rec.Evaluation.TotalKcal)
}

func TestAssess(t *testing.T) {
	r := referenceRecord()
	r.Formula = energy.FormulaCunningham
	r, _ = Evaluate(r)
	m := anthro.Measurements{
		Skinfolds: referenceSkinfolds(),
		Diameters: anthro.Diameters{Wrist: anthro.Ptr(5.5), Femur: anthro.Ptr(9.5), Humerus: anthro.Ptr(7)},
	}

	got := Assess(r, m)

	require.NotNil(t, got.Composition.TwoComp)
	require.NotNil(t, got.Composition.FiveComp)
	require.NotNil(t, got.Composition.Somatotype)
	assert.InDelta(t, 14.5641, got.Composition.TwoComp.FatPercent, 1e-3)
	assert.True(t, got.Composition.FiveComp.Complete)
	assert.Equal(t, m, got.Measurements)

	lean := got.Composition.TwoComp.LeanMassKg
	want := energy.TDEE(anthro.Male, 70, 170, 25, energy.ActivityModerate, energy.FormulaCunningham, lean)
	assert.InDelta(t, want, got.Evaluation.TotalKcal, 1e-9)
	assert.Greater(t, got.Evaluation.TotalKcal, 0.0)

	// Re-evaluating keeps the composition and clears the warning.
	_, warning := Evaluate(got)
	assert.Empty(t, warning)
}

func TestAssess_OtherFormulaKeepsEnergy(t *testing.T) {
	r, _ := Evaluate(referenceRecord())
	before := r.Evaluation.TotalKcal
	got := Assess(r, anthro.Measurements{Skinfolds: referenceSkinfolds()})
	assert.Equal(t, before, got.Evaluation.TotalKcal)
}

func TestRefresh_RecomputesCompositionForNewWeight(t *testing.T) {
	r := referenceRecord()
	r.Formula = energy.FormulaCunningham
	r = Assess(r, anthro.Measurements{Skinfolds: referenceSkinfolds()})
	staleLean := r.Composition.TwoComp.LeanMassKg

	r.WeightKg = 90
	got, warning := Refresh(r)

	assert.Empty(t, warning)
	two := got.Composition.TwoComp
	require.NotNil(t, two)
	assert.InDelta(t, 90, two.FatMassKg+two.LeanMassKg, 1e-9)
	assert.Greater(t, two.LeanMassKg, staleLean)
	want := energy.TDEE(anthro.Male, 90, 170, 25, energy.ActivityModerate, energy.FormulaCunningham, two.LeanMassKg)
	assert.InDelta(t, want, got.Evaluation.TotalKcal, 1e-9)
}

func TestRefresh_WithoutMeasurementsOnlyEvaluates(t *testing.T) {
	got, _ := Refresh(referenceRecord())
	assert.Nil(t, got.Composition.TwoComp)
	assert.Greater(t, got.Evaluation.TotalKcal, 0.0)
}

const owner = 3

type env struct {
	router *mux.Router
	store  *fakeStore
}

func newEnv() *env {
	store := newFakeStore()
	h := &Handler{
		Service: NewService(store),
		Foods: fakeFoods{
			"A001": {Code: "A001", Name: "Arroz blanco", Nutrients: nutrient.Nutrients{Kcal: 360, Protein: 7, Carbs: 79, Fat: 0.6}},
		},
		Logger: zap.NewNop(),
	}
	r := mux.NewRouter()
	r.HandleFunc("/patients", h.List).Methods("GET")
	r.HandleFunc("/patients", h.Save).Methods("POST")
	r.HandleFunc("/patients/{slug}", h.Get).Methods("GET")
	r.HandleFunc("/patients/{slug}", h.Delete).Methods("DELETE")
	r.HandleFunc("/patients/{slug}/measurements", h.Measurements).Methods("PUT")
	r.HandleFunc("/patients/{slug}/diet", h.AddDietItem).Methods("POST")
	r.HandleFunc("/patients/{slug}/diet", h.ClearDiet).Methods("DELETE")
	r.HandleFunc("/patients/{slug}/diet/split", h.SetSplit).Methods("PUT")
	r.HandleFunc("/patients/{slug}/diet/summary", h.DietSummary).Methods("GET")
	r.HandleFunc("/patients/{slug}/diet/{item}", h.RemoveDietItem).Methods("DELETE")
	r.HandleFunc("/patients/{slug}/export/diet", h.ExportDiet).Methods("GET")
	r.HandleFunc("/patients/{slug}/export/evaluation", h.ExportEvaluation).Methods("GET")
	r.HandleFunc("/patients/{slug}/report", h.Report).Methods("GET")
	return &env{router: r, store: store}
}

func (e *env) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if s, ok := body.(string); ok {
		buf.WriteString(s)
	} else if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req = req.WithContext(auth.WithSession(req.Context(), auth.Session{UserID: owner, Login: "lucia", Role: repo.RoleUser}))
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *env) stored(t *testing.T, slug string) Record {
	t.Helper()
	row, ok := e.store.rows[key{owner, slug}]
	require.True(t, ok, "patient %s not stored", slug)
	var rec Record
	require.NoError(t, json.Unmarshal(row.Data, &rec))
	return rec
}

func saveReference(t *testing.T, e *env) {
	t.Helper()
	rec := e.do(http.MethodPost, "/patients", SaveRequest{
		Name: "Juan Perez", Age: 25, Sex: anthro.Male, WeightKg: 70, HeightCm: 170,
		Activity: energy.ActivityModerate, Formula: energy.FormulaCunningham,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestSave_CreateThenUpdateKeepsComposition(t *testing.T) {
	e := newEnv()

	rec := e.do(http.MethodPost, "/patients", SaveRequest{
		Name: "Juan Perez", Age: 25, Sex: anthro.Male, WeightKg: 70, HeightCm: 170,
		Activity: energy.ActivityModerate, Formula: energy.FormulaCunningham,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp SaveResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "juan_perez", resp.Slug)
	assert.Equal(t, CunninghamWithoutLeanMass, resp.Warning)

	rec = e.do(http.MethodPut, "/patients/juan_perez/measurements", anthro.Measurements{Skinfolds: referenceSkinfolds()})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, e.stored(t, "juan_perez").Composition.TwoComp)

	rec = e.do(http.MethodPost, "/patients", SaveRequest{
		Name: "Juan Perez", Age: 26, Sex: anthro.Male, WeightKg: 72, HeightCm: 170,
		Activity: energy.ActivityModerate, Formula: energy.FormulaCunningham, ClinicalHistory: "HTA",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp = SaveResponse{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Empty(t, resp.Warning)

	stored := e.stored(t, "juan_perez")
	assert.Equal(t, 26, stored.Age)
	assert.Equal(t, "HTA", stored.ClinicalHistory)
	require.NotNil(t, stored.Composition.TwoComp)
	assert.Greater(t, stored.Evaluation.TotalKcal, 0.0)
}

func TestSave_WeightChangeRecomputesComposition(t *testing.T) {
	e := newEnv()
	saveReference(t, e)
	require.Equal(t, http.StatusOK, e.do(http.MethodPut, "/patients/juan_perez/measurements", anthro.Measurements{Skinfolds: referenceSkinfolds()}).Code)

	rec := e.do(http.MethodPost, "/patients", SaveRequest{
		Name: "Juan Perez", Age: 25, Sex: anthro.Male, WeightKg: 90, HeightCm: 170,
		Activity: energy.ActivityModerate, Formula: energy.FormulaCunningham,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	stored := e.stored(t, "juan_perez")
	two := stored.Composition.TwoComp
	require.NotNil(t, two)
	assert.InDelta(t, 90, two.FatMassKg+two.LeanMassKg, 1e-9)
	want := energy.TDEE(anthro.Male, 90, 170, 25, energy.ActivityModerate, energy.FormulaCunningham, two.LeanMassKg)
	assert.InDelta(t, want, stored.Evaluation.TotalKcal, 1e-9)
	assert.Equal(t, referenceSkinfolds(), stored.Measurements.Skinfolds)
}

func TestMeasurements_RejectsNegativeSite(t *testing.T) {
	e := newEnv()
	saveReference(t, e)

	m := anthro.Measurements{Skinfolds: referenceSkinfolds()}
	m.Skinfolds.Triceps = anthro.Ptr(-20)
	rec := e.do(http.MethodPut, "/patients/juan_perez/measurements", m)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tricipital")
	assert.Nil(t, e.stored(t, "juan_perez").Composition.TwoComp)
}

func TestSave_Validation(t *testing.T) {
	e := newEnv()
	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/patients", `{`).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/patients", SaveRequest{Name: "  ", Age: 30, Sex: anthro.Female, WeightKg: 60, HeightCm: 160}).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/patients", SaveRequest{Name: "Ana", Age: 30, Sex: "otro", WeightKg: 60, HeightCm: 160}).Code)
	assert.Empty(t, e.store.rows)
}

func TestUnauthenticated(t *testing.T) {
	e := newEnv()
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListGetDelete(t *testing.T) {
	e := newEnv()
	saveReference(t, e)
	e.store.rows[key{owner + 1, "otro"}] = repo.PatientRow{Slug: "otro", Name: "Otro", Data: []byte(`{}`)}

	rec := e.do(http.MethodGet, "/patients", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []repo.PatientSummary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "Juan Perez", list[0].Name)

	rec = e.do(http.MethodGet, "/patients/juan_perez", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got Record
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, 70.0, got.WeightKg)

	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/patients/otro", nil).Code)
	assert.Equal(t, http.StatusNoContent, e.do(http.MethodDelete, "/patients/juan_perez", nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodDelete, "/patients/juan_perez", nil).Code)
}

func TestDietFlow(t *testing.T) {
	e := newEnv()
	saveReference(t, e)

	rec := e.do(http.MethodPost, "/patients/juan_perez/diet", AddItemRequest{Code: "A001", Grams: 150, MealTime: diet.Lunch})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var item diet.Item
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&item))
	assert.InDelta(t, 540, item.Nutrients.Kcal, 1e-9)

	assert.Equal(t, http.StatusNotFound, e.do(http.MethodPost, "/patients/juan_perez/diet", AddItemRequest{Code: "Z999", Grams: 100, MealTime: diet.Lunch}).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/patients/juan_perez/diet", AddItemRequest{Code: "A001", Grams: 0, MealTime: diet.Lunch}).Code)
	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPost, "/patients/juan_perez/diet", AddItemRequest{Code: "A001", Grams: 50, MealTime: "Brunch"}).Code)
	assert.Len(t, e.stored(t, "juan_perez").Diet, 1)

	rec = e.do(http.MethodGet, "/patients/juan_perez/diet/summary?carbs=60&protein=15", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sum diet.Summary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sum))
	assert.Equal(t, 1, sum.Items)
	assert.InDelta(t, 540, sum.Totals.Kcal, 1e-9)
	assert.InDelta(t, 25, sum.DesiredSplit.FatPct, 1e-9)

	rec = e.do(http.MethodPut, "/patients/juan_perez/diet/split", map[string]float64{"carbs_pct": 55, "protein_pct": 25})
	require.Equal(t, http.StatusOK, rec.Code)
	stored := e.stored(t, "juan_perez")
	require.NotNil(t, stored.MacroSplit)
	assert.InDelta(t, 20, stored.MacroSplit.FatPct, 1e-9)
	assert.Equal(t, http.StatusBadRequest, e.do(http.MethodPut, "/patients/juan_perez/diet/split", map[string]float64{"carbs_pct": 120}).Code)

	assert.Equal(t, http.StatusNotFound, e.do(http.MethodDelete, "/patients/juan_perez/diet/nope", nil).Code)
	assert.Equal(t, http.StatusNoContent, e.do(http.MethodDelete, "/patients/juan_perez/diet/"+item.ID, nil).Code)
	assert.Empty(t, e.stored(t, "juan_perez").Diet)

	e.do(http.MethodPost, "/patients/juan_perez/diet", AddItemRequest{Code: "A001", Grams: 100, MealTime: diet.Breakfast})
	assert.Equal(t, http.StatusNoContent, e.do(http.MethodDelete, "/patients/juan_perez/diet", nil).Code)
	assert.Empty(t, e.stored(t, "juan_perez").Diet)
}

func TestExportsAndReport(t *testing.T) {
	e := newEnv()
	saveReference(t, e)
	e.do(http.MethodPut, "/patients/juan_perez/measurements", anthro.Measurements{Skinfolds: referenceSkinfolds()})
	e.do(http.MethodPost, "/patients/juan_perez/diet", AddItemRequest{Code: "A001", Grams: 100, MealTime: diet.Dinner})

	for _, tc := range []struct {
		path, contentType, filename string
	}{
		{"/patients/juan_perez/export/diet", export.ContentType, "dieta_juan_perez.xlsx"},
		{"/patients/juan_perez/export/evaluation", export.ContentType, "evaluacion_juan_perez.xlsx"},
		{"/patients/juan_perez/report", "application/pdf", "informe_juan_perez.pdf"},
	} {
		rec := e.do(http.MethodGet, tc.path, nil)
		require.Equal(t, http.StatusOK, rec.Code, tc.path)
		assert.Equal(t, tc.contentType, rec.Header().Get("Content-Type"))
		assert.Equal(t, fmt.Sprintf("attachment; filename=\"%s\"", tc.filename), rec.Header().Get("Content-Disposition"))
		assert.NotZero(t, rec.Body.Len())
	}

	rec := e.do(http.MethodGet, "/patients/juan_perez/report", nil)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
	assert.Equal(t, http.StatusNotFound, e.do(http.MethodGet, "/patients/nadie/report", nil).Code)
}
