// Package patient keeps practitioners' patient records and runs the
// evaluation pipeline over them.
package patient

import (
	"errors"
	"strings"

	"github.com/idalopban/ComVida/internal/calc/anthro"
	"github.com/idalopban/ComVida/internal/calc/bmi"
	"github.com/idalopban/ComVida/internal/calc/energy"
	"github.com/idalopban/ComVida/internal/calc/fivecomp"
	"github.com/idalopban/ComVida/internal/calc/macros"
	"github.com/idalopban/ComVida/internal/calc/somatotype"
	"github.com/idalopban/ComVida/internal/calc/twocomp"
	"github.com/idalopban/ComVida/internal/diet"
)

var ErrNameRequired = errors.New("el nombre es obligatorio")

// CunninghamWithoutLeanMass is reported when the Cunningham formula is
// selected before any body composition has been computed.
const CunninghamWithoutLeanMass = "Se seleccionó Cunningham pero no hay datos de composición corporal. El GET será 0."

type Evaluation struct {
	BMI       float64 `json:"imc"`
	BMILabel  string  `json:"diagnostico_imc"`
	TotalKcal float64 `json:"get"`
}

type Composition struct {
	TwoComp    *twocomp.Result    `json:"modelo_2c,omitempty"`
	FiveComp   *fivecomp.Result   `json:"modelo_5c,omitempty"`
	Somatotype *somatotype.Result `json:"somatotipo,omitempty"`
}

// LeanMassKg is the 2C lean mass, 0 when not computed.
func (c Composition) LeanMassKg() float64 {
	if c.TwoComp == nil {
		return 0
	}
	return c.TwoComp.LeanMassKg
}

type Record struct {
	Name            string              `json:"nombre"`
	Age             int                 `json:"edad"`
	Sex             anthro.Sex          `json:"sexo"`
	WeightKg        float64             `json:"peso"`
	HeightCm        float64             `json:"talla_cm"`
	Activity        energy.Activity     `json:"actividad"`
	Race            anthro.Race         `json:"raza,omitempty"`
	Formula         energy.Formula      `json:"formula_get"`
	ClinicalHistory string              `json:"historia_clinica"`
	Measurements    anthro.Measurements `json:"medidas"`
	Evaluation      Evaluation          `json:"evaluacion"`
	Composition     Composition         `json:"composicion"`
	Diet            []diet.Item         `json:"dieta_actual"`
	MacroSplit      *macros.Split       `json:"distribucion_macros,omitempty"`
}

// Slug is the per-practitioner key of a patient: lower case, spaces as
// underscores, dots removed.
func Slug(name string) string {
	s := strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	s = strings.ReplaceAll(s, ".", "")
	return strings.ToLower(s)
}

func (r Record) Subject() anthro.Subject {
	return anthro.Subject{Sex: r.Sex, Age: r.Age, WeightKg: r.WeightKg, HeightCm: r.HeightCm, Race: r.Race}
}

// Split is the desired macro distribution, defaulting to 50/20/30.
func (r Record) Split() macros.Split {
	if r.MacroSplit == nil {
		return macros.DefaultSplit()
	}
	return *r.MacroSplit
}

// Evaluate recomputes BMI and energy expenditure. Cunningham reads the lean
// mass of the stored 2C composition; the returned warning is non-empty when
// that mass is missing.
func Evaluate(r Record) (Record, string) {
	b := bmi.Calculate(bmi.Input{WeightKg: r.WeightKg, HeightCm: r.HeightCm})
	lean := r.Composition.LeanMassKg()
	r.Evaluation = Evaluation{
		BMI:       b.BMI,
		BMILabel:  b.Label,
		TotalKcal: energy.TDEE(r.Sex, r.WeightKg, r.HeightCm, r.Age, r.Activity, r.Formula, lean),
	}
	var warning string
	if r.Formula == energy.FormulaCunningham && lean <= 0 {
		warning = CunninghamWithoutLeanMass
	}
	return r, warning
}

// Refresh is run after subject data change. A record that already has a
// composition is re-assessed with its stored measurements before BMI and
// energy expenditure are recomputed, so Cunningham sees the new lean mass.
func Refresh(r Record) (Record, string) {
	if r.Measurements.Taken() || r.Composition.TwoComp != nil {
		r = Assess(r, r.Measurements)
	}
	return Evaluate(r)
}

// Assess stores a new measurement session and recomputes the 2C and 5C
// models and the somatotype. When the patient uses Cunningham and a lean
// mass is now available, energy expenditure is refreshed too.
func Assess(r Record, m anthro.Measurements) Record {
	r.Measurements = m
	subj := r.Subject()

	two := twocomp.Calculate(twocomp.Input{Subject: subj, Skinfolds: m.Skinfolds})
	five := fivecomp.Calculate(fivecomp.Input{Subject: subj, Skinfolds: m.Skinfolds, Diameters: m.Diameters})
	soma := somatotype.Calculate(somatotype.Input{
		WeightKg:       r.WeightKg,
		HeightCm:       r.HeightCm,
		Skinfolds:      m.Skinfolds,
		Circumferences: m.Circumferences,
		Diameters:      m.Diameters,
	})
	r.Composition = Composition{TwoComp: &two, FiveComp: &five, Somatotype: &soma}

	if r.Formula == energy.FormulaCunningham && two.LeanMassKg > 0 {
		r.Evaluation.TotalKcal = energy.TDEE(r.Sex, r.WeightKg, r.HeightCm, r.Age, r.Activity, energy.FormulaCunningham, two.LeanMassKg)
	}
	return r
}
