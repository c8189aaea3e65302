// Package macros turns an energy target into macronutrient gram targets and
// reports the energy distribution of an intake.
package macros

import "fmt"

const (
	KcalPerGramCarbs   = 4.0
	KcalPerGramProtein = 4.0
	KcalPerGramFat     = 9.0

	DefaultCarbsPct   = 50.0
	DefaultProteinPct = 20.0
)

// Split is a percentage distribution of energy. Fat takes whatever is left.
type Split struct {
	CarbsPct   float64 `json:"carbs_pct"`
	ProteinPct float64 `json:"protein_pct"`
	FatPct     float64 `json:"fat_pct"`
}

// NewSplit builds a split from the carbs and protein shares. Fat is
// 100 - carbs - protein, never below 0.
func NewSplit(carbsPct, proteinPct float64) Split {
	fat := 100 - carbsPct - proteinPct
	if fat < 0 {
		fat = 0
	}
	return Split{CarbsPct: carbsPct, ProteinPct: proteinPct, FatPct: fat}
}

func DefaultSplit() Split {
	return NewSplit(DefaultCarbsPct, DefaultProteinPct)
}

type Grams struct {
	Carbs   float64 `json:"carbs_g"`
	Protein float64 `json:"protein_g"`
	Fat     float64 `json:"fat_g"`
}

// Targets converts an energy goal into grams for each macronutrient.
func Targets(totalKcal float64, s Split) Grams {
	if totalKcal <= 0 {
		return Grams{}
	}
	return Grams{
		Carbs:   totalKcal * s.CarbsPct / 100 / KcalPerGramCarbs,
		Protein: totalKcal * s.ProteinPct / 100 / KcalPerGramProtein,
		Fat:     totalKcal * s.FatPct / 100 / KcalPerGramFat,
	}
}

type Energy struct {
	CarbsKcal   float64 `json:"carbs_kcal"`
	ProteinKcal float64 `json:"protein_kcal"`
	FatKcal     float64 `json:"fat_kcal"`
	TotalKcal   float64 `json:"total_kcal"`
	Split       Split   `json:"split"`
}

// Distribution reports how much energy each macronutrient contributes.
// Percentages are relative to the macro energy, 0 when there is none.
func Distribution(g Grams) Energy {
	e := Energy{
		CarbsKcal:   g.Carbs * KcalPerGramCarbs,
		ProteinKcal: g.Protein * KcalPerGramProtein,
		FatKcal:     g.Fat * KcalPerGramFat,
	}
	e.TotalKcal = e.CarbsKcal + e.ProteinKcal + e.FatKcal
	if e.TotalKcal > 0 {
		e.Split = Split{
			CarbsPct:   e.CarbsKcal / e.TotalKcal * 100,
			ProteinPct: e.ProteinKcal / e.TotalKcal * 100,
			FatPct:     e.FatKcal / e.TotalKcal * 100,
		}
	}
	return e
}

type Input struct {
	TotalKcal  float64  `json:"total_kcal"`
	CarbsPct   *float64 `json:"carbs_pct,omitempty"`
	ProteinPct *float64 `json:"protein_pct,omitempty"`
}

type Result struct {
	Split   Split  `json:"split"`
	Targets Grams  `json:"targets"`
	Notes   string `json:"notes"`
}

func Calculate(in Input) (Result, error) {
	if in.TotalKcal <= 0 {
		return Result{}, fmt.Errorf("total_kcal must be positive")
	}
	carbs, protein := DefaultCarbsPct, DefaultProteinPct
	if in.CarbsPct != nil {
		carbs = *in.CarbsPct
	}
	if in.ProteinPct != nil {
		protein = *in.ProteinPct
	}
	if carbs < 0 || protein < 0 || carbs > 100 || protein > 100 {
		return Result{}, fmt.Errorf("percentages must be within 0-100")
	}
	s := NewSplit(carbs, protein)
	res := Result{Split: s, Targets: Targets(in.TotalKcal, s)}
	if carbs+protein > 100 {
		res.Notes = "Carbohidratos y proteínas superan el 100%; grasas fijadas en 0%."
	}
	return res, nil
}
