package energy

import "github.com/idalopban/ComVida/internal/calc/anthro"

type Formula string

const (
	FormulaMifflin    Formula = "Mifflin-St Jeor"
	FormulaHarris     Formula = "Harris-Benedict"
	FormulaCunningham Formula = "Cunningham"
)

type Activity string

const (
	ActivityLight    Activity = "Ligera"
	ActivityModerate Activity = "Moderada"
	ActivityIntense  Activity = "Intensa"
)

type Input struct {
	Sex        anthro.Sex `json:"sex"`
	WeightKg   float64    `json:"weight_kg"`
	HeightCm   float64    `json:"height_cm"`
	Age        int        `json:"age"`
	Activity   Activity   `json:"activity"`
	Formula    Formula    `json:"formula"`
	LeanMassKg float64    `json:"lean_mass_kg"`
}

type Result struct {
	BasalKcal   float64 `json:"basal_kcal"`
	TotalKcal   float64 `json:"total_kcal"`
	Multiplier  float64 `json:"multiplier"`
	FormulaUsed Formula `json:"formula_used"`
	Notes       string  `json:"notes"`
}

// Calculate returns a zero result when weight, height or age is missing.
// Cunningham without lean mass also yields 0 kcal: the composition model has
// to run first.
func Calculate(in Input) Result {
	formula := normalize(in.Formula)
	if in.WeightKg <= 0 || in.HeightCm <= 0 || in.Age <= 0 {
		return Result{FormulaUsed: formula, Notes: "Peso, talla y edad son obligatorios."}
	}
	bmr := Basal(in.Sex, in.WeightKg, in.HeightCm, in.Age, formula, in.LeanMassKg)
	mult := Multiplier(in.Activity)
	notes := "GET = GEB x factor de actividad."
	if formula == FormulaCunningham && in.LeanMassKg <= 0 {
		notes = "Cunningham requiere masa magra: calcule la composición corporal primero."
	}
	return Result{
		BasalKcal:   bmr,
		TotalKcal:   bmr * mult,
		Multiplier:  mult,
		FormulaUsed: formula,
		Notes:       notes,
	}
}

// TDEE is the bare total, for callers that only need the number.
func TDEE(sex anthro.Sex, weightKg, heightCm float64, age int, activity Activity, formula Formula, leanMassKg float64) float64 {
	return Calculate(Input{
		Sex:        sex,
		WeightKg:   weightKg,
		HeightCm:   heightCm,
		Age:        age,
		Activity:   activity,
		Formula:    formula,
		LeanMassKg: leanMassKg,
	}).TotalKcal
}

func Basal(sex anthro.Sex, w, h float64, age int, formula Formula, leanMassKg float64) float64 {
	a := float64(age)
	switch normalize(formula) {
	case FormulaHarris:
		if sex == anthro.Male {
			return 88.362 + 13.397*w + 4.799*h - 5.677*a
		}
		return 447.593 + 9.247*w + 3.098*h - 4.330*a
	case FormulaCunningham:
		if leanMassKg <= 0 {
			return 0
		}
		return 500 + 22*leanMassKg
	default:
		if sex == anthro.Male {
			return 10*w + 6.25*h - 5*a + 5
		}
		return 10*w + 6.25*h - 5*a - 161
	}
}

func Multiplier(a Activity) float64 {
	switch a {
	case ActivityLight:
		return 1.375
	case ActivityModerate:
		return 1.55
	default:
		return 1.725
	}
}

func normalize(f Formula) Formula {
	switch f {
	case FormulaMifflin, FormulaHarris, FormulaCunningham:
		return f
	default:
		return FormulaMifflin
	}
}
