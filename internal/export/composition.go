package export

import (
	"fmt"

	"github.com/idalopban/ComVida/internal/calc/anthro"
	"github.com/idalopban/ComVida/internal/calc/energy"
	"github.com/idalopban/ComVida/internal/calc/fivecomp"
	"github.com/idalopban/ComVida/internal/calc/somatotype"
	"github.com/idalopban/ComVida/internal/calc/twocomp"
)

// Composition is everything the evaluation workbook shows about a patient.
type Composition struct {
	Name         string
	Age          int
	Sex          anthro.Sex
	WeightKg     float64
	HeightCm     float64
	Race         anthro.Race
	BMI          float64
	BMILabel     string
	TotalKcal    float64
	Formula      energy.Formula
	TwoComp      *twocomp.Result
	FiveComp     *fivecomp.Result
	Somatotype   *somatotype.Result
	Measurements anthro.Measurements
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func CompositionWorkbook(c Composition) ([]byte, error) {
	b, err := newBook()
	if err != nil {
		return nil, err
	}

	sheets := []struct {
		name   string
		header []string
		rows   [][]interface{}
	}{
		{"Resumen_Paciente", []string{"Dato", "Valor"}, [][]interface{}{
			{"Nombre", orNA(c.Name)},
			{"Edad", c.Age},
			{"Sexo", orNA(string(c.Sex))},
			{"Peso (kg)", c.WeightKg},
			{"Talla (cm)", c.HeightCm},
			{"Raza", orNA(string(c.Race))},
		}},
		{"Evaluacion_General", []string{"Métrica", "Valor"}, [][]interface{}{
			{"IMC", fmt.Sprintf("%.2f", c.BMI)},
			{"Diagnóstico IMC", orNA(c.BMILabel)},
			{"GET (kcal)", fmt.Sprintf("%.0f", c.TotalKcal)},
			{"Fórmula GET", orNA(string(c.Formula))},
		}},
		{"Composicion_Corporal_2C", []string{"Métrica", "Valor"}, twoCompRows(c.TwoComp)},
		{"Somatotipo", []string{"Componente", "Valor"}, somatotypeRows(c.Somatotype)},
		{"Medidas_Pliegues", []string{"Pliegue", "Valor (mm)"}, siteRows(c.Measurements.Skinfolds.Sites())},
		{"Medidas_Circunferencias", []string{"Circunferencia", "Valor (cm)"}, siteRows(c.Measurements.Circumferences.Sites())},
		{"Medidas_Diametros", []string{"Diametro", "Valor (cm)"}, siteRows(c.Measurements.Diameters.Sites())},
	}
	for _, s := range sheets {
		if err := b.addSheet(s.name, s.header, s.rows); err != nil {
			return nil, err
		}
	}

	if k := c.FiveComp; k != nil {
		rows := [][]interface{}{
			{"Densidad Corporal (ISAK)", fmt.Sprintf("%.4f", k.BodyDensity)},
			{"% Grasa (Siri)", fmt.Sprintf("%.1f%%", k.FatPercentSiri)},
			{"% Grasa (Brozek)", fmt.Sprintf("%.1f%%", k.FatPercentBrozek)},
			{"Masa Grasa (MG) (kg)", fmt.Sprintf("%.2f", k.Fat.MassKg)},
			{"Masa Muscular (MM) (kg)", fmt.Sprintf("%.2f", k.Muscle.MassKg)},
			{"Masa Ósea (MO) (kg)", fmt.Sprintf("%.2f", k.Bone.MassKg)},
			{"Masa Residual (MR) (kg)", fmt.Sprintf("%.2f", k.Residual.MassKg)},
			{"Masa de Piel (MP) (kg)", fmt.Sprintf("%.2f", k.Skin.MassKg)},
			{"Suma de Componentes (kg)", fmt.Sprintf("%.2f", k.SumOfComponentsKg)},
			{"Diferencia con Peso (kg)", fmt.Sprintf("%.2f", k.DifferenceKg)},
			{"Error", orNA(k.Error)},
		}
		if err := b.addSheet("Composicion_5C_Kerr", []string{"Métrica", "Valor"}, rows); err != nil {
			return nil, err
		}
	}
	return b.bytes()
}

func twoCompRows(r *twocomp.Result) [][]interface{} {
	var v twocomp.Result
	if r != nil {
		v = *r
	}
	return [][]interface{}{
		{"% Grasa Corporal (2C)", fmt.Sprintf("%.1f%%", v.FatPercent)},
		{"Masa Grasa (2C) (kg)", fmt.Sprintf("%.1f", v.FatMassKg)},
		{"Masa Magra (2C) (kg)", fmt.Sprintf("%.1f", v.LeanMassKg)},
		{"Diagnóstico Grasa (2C)", orNA(v.Diagnostic)},
	}
}

func somatotypeRows(r *somatotype.Result) [][]interface{} {
	var v somatotype.Result
	if r != nil {
		v = *r
	}
	return [][]interface{}{
		{"Endomorfia", v.Endomorphy},
		{"Mesomorfia", v.Mesomorphy},
		{"Ectomorfia", v.Ectomorphy},
		{"Clasificación", orNA(v.Classification)},
	}
}

// siteRows lists measured sites only.
func siteRows(sites []anthro.Site) [][]interface{} {
	var rows [][]interface{}
	for _, s := range sites {
		if s.Value != nil {
			rows = append(rows, []interface{}{s.Label, *s.Value})
		}
	}
	return rows
}
