package diet

import (
	"github.com/idalopban/ComVida/internal/calc/macros"
	"github.com/idalopban/ComVida/internal/nutrient"
)

type MacroRow struct {
	Nutrient   string  `json:"nutrient"`
	Actual     float64 `json:"actual_g"`
	Target     float64 `json:"target_g"`
	Difference float64 `json:"difference_g"`
}

type MealSummary struct {
	MealTime MealTime `json:"meal_time"`
	Kcal     float64  `json:"kcal"`
	Protein  float64  `json:"proteinas"`
	Fat      float64  `json:"grasas"`
	Carbs    float64  `json:"carbohidratos"`
}

type Amount struct {
	Nutrient string  `json:"nutrient"`
	Total    float64 `json:"total"`
}

type Summary struct {
	Items          int                `json:"items"`
	Totals         nutrient.Nutrients `json:"totals"`
	TargetKcal     float64            `json:"target_kcal"`
	AdequacyPct    float64            `json:"adequacy_pct"`
	Distribution   macros.Energy      `json:"distribution"`
	DesiredSplit   macros.Split       `json:"desired_split"`
	Macros         []MacroRow         `json:"macros"`
	Meals          []MealSummary      `json:"meals"`
	Micronutrients []Amount           `json:"micronutrients"`
}

// Summarize compares the plan with the energy target. Adequacy is 0 when
// there is no target.
func Summarize(plan []Item, targetKcal float64, split macros.Split) Summary {
	t := Totals(plan)
	s := Summary{
		Items:        len(plan),
		Totals:       t,
		TargetKcal:   targetKcal,
		DesiredSplit: split,
		Distribution: macros.Distribution(macros.Grams{Carbs: t.Carbs, Protein: t.Protein, Fat: t.Fat}),
	}
	if targetKcal > 0 {
		s.AdequacyPct = t.Kcal / targetKcal * 100
	}

	target := macros.Targets(targetKcal, split)
	s.Macros = []MacroRow{
		{"Proteínas", t.Protein, target.Protein, t.Protein - target.Protein},
		{"Grasas", t.Fat, target.Fat, t.Fat - target.Fat},
		{"Carbohidratos", t.Carbs, target.Carbs, t.Carbs - target.Carbs},
	}

	for _, m := range ByMeal(plan) {
		s.Meals = append(s.Meals, MealSummary{
			MealTime: m.MealTime,
			Kcal:     m.Totals.Kcal,
			Protein:  m.Totals.Protein,
			Fat:      m.Totals.Fat,
			Carbs:    m.Totals.Carbs,
		})
	}

	for _, f := range nutrient.Micronutrients() {
		if v := f.Value(t); v > 0 {
			s.Micronutrients = append(s.Micronutrients, Amount{Nutrient: f.Label, Total: v})
		}
	}
	return s
}
