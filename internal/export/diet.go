package export

import (
	"strings"

	"github.com/idalopban/ComVida/internal/diet"
	"github.com/idalopban/ComVida/internal/nutrient"
)

// MealSheetName turns "Colación Mañana" into "Colación_Manana".
func MealSheetName(m diet.MealTime) string {
	return strings.NewReplacer(" ", "_", "ñ", "n").Replace(string(m))
}

// DietWorkbook exports the plan: the full item list, per-meal totals, the
// macro adequacy table and one sheet per meal time in use.
func DietWorkbook(plan []diet.Item, s diet.Summary) ([]byte, error) {
	b, err := newBook()
	if err != nil {
		return nil, err
	}

	header := []string{"ID", "Tiempo Comida", "Código", "Alimento", "Gramos"}
	for _, f := range nutrient.Fields {
		header = append(header, f.Label)
	}
	rows := make([][]interface{}, 0, len(plan))
	for _, it := range plan {
		row := []interface{}{it.ID, string(it.MealTime), it.Code, it.Name, it.Grams}
		for _, f := range nutrient.Fields {
			row = append(row, f.Value(it.Nutrients))
		}
		rows = append(rows, row)
	}
	if err := b.addSheet("Dieta_Detallada", header, rows); err != nil {
		return nil, err
	}

	rows = rows[:0:0]
	for _, m := range s.Meals {
		rows = append(rows, []interface{}{string(m.MealTime), m.Kcal, m.Protein, m.Fat, m.Carbs})
	}
	if err := b.addSheet("Resumen_Comidas", []string{"Tiempo Comida", "Kcal", "Proteínas", "Grasas", "Carbohidratos"}, rows); err != nil {
		return nil, err
	}

	var actual, target, diff []interface{}
	actual = append(actual, "Actual (g)")
	target = append(target, "Objetivo (g)")
	diff = append(diff, "Diferencia (g)")
	macroHeader := []string{""}
	for _, m := range s.Macros {
		macroHeader = append(macroHeader, m.Nutrient)
		actual = append(actual, m.Actual)
		target = append(target, m.Target)
		diff = append(diff, m.Difference)
	}
	if err := b.addSheet("Adecuacion_Macros", macroHeader, [][]interface{}{actual, target, diff}); err != nil {
		return nil, err
	}

	// Per-meal sheets leave out the ID, the meal time and kJ.
	mealHeader := []string{"Código", "Alimento", "Gramos"}
	var mealFields []nutrient.Field
	for _, f := range nutrient.Fields {
		if f.Label != "Kj" {
			mealHeader = append(mealHeader, f.Label)
			mealFields = append(mealFields, f)
		}
	}
	for _, m := range diet.ByMeal(plan) {
		rows := make([][]interface{}, 0, len(m.Items))
		for _, it := range m.Items {
			row := []interface{}{it.Code, it.Name, it.Grams}
			for _, f := range mealFields {
				row = append(row, f.Value(it.Nutrients))
			}
			rows = append(rows, row)
		}
		if err := b.addSheet(MealSheetName(m.MealTime), mealHeader, rows); err != nil {
			return nil, err
		}
	}
	return b.bytes()
}
