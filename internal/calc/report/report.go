// Package report renders a patient's evaluation as a PDF.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/idalopban/ComVida/internal/calc/bmi"
	"github.com/idalopban/ComVida/internal/calc/fivecomp"
	"github.com/idalopban/ComVida/internal/calc/somatotype"
	"github.com/idalopban/ComVida/internal/calc/twocomp"
	"github.com/phpdave11/gofpdf"
)

type Data struct {
	Title        string             `json:"title"`
	Patient      string             `json:"patient"`
	Practitioner string             `json:"practitioner"`
	Sex          string             `json:"sex"`
	Age          int                `json:"age"`
	WeightKg     float64            `json:"weight_kg"`
	HeightCm     float64            `json:"height_cm"`
	Activity     string             `json:"activity"`
	Formula      string             `json:"formula"`
	BMI          bmi.Result         `json:"bmi"`
	TotalKcal    float64            `json:"total_kcal"`
	TwoComp      *twocomp.Result    `json:"two_comp,omitempty"`
	FiveComp     *fivecomp.Result   `json:"five_comp,omitempty"`
	Somatotype   *somatotype.Result `json:"somatotype,omitempty"`
	Notes        string             `json:"notes"`
	Date         time.Time          `json:"date"`
}

// Render writes the PDF to w. Core fonts are cp1252, so every string goes
// through the translator to keep accents readable.
func Render(w io.Writer, d Data) error {
	if d.Title == "" {
		d.Title = "Informe de Evaluación Nutricional"
	}
	if d.Date.IsZero() {
		d.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(d.Title))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	line := func(format string, args ...interface{}) {
		pdf.Cell(0, 6, tr(fmt.Sprintf(format, args...)))
		pdf.Ln(6)
	}
	section := func(title string) {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
	}

	line("Paciente: %s", d.Patient)
	if d.Practitioner != "" {
		line("Profesional: %s", d.Practitioner)
	}
	line("Fecha: %s", d.Date.Format("02/01/2006"))

	section("Datos generales")
	line("Sexo: %s   Edad: %d años", d.Sex, d.Age)
	line("Peso: %.1f kg   Talla: %.1f cm", d.WeightKg, d.HeightCm)
	line("IMC: %.2f (%s)", d.BMI.BMI, d.BMI.Label)
	line("Actividad: %s   Fórmula: %s", d.Activity, d.Formula)
	line("Gasto energético total: %.0f kcal/día", d.TotalKcal)

	if c := d.TwoComp; c != nil {
		section("Composición corporal (2 componentes)")
		line("Densidad corporal: %.4f g/cm³", c.Density)
		line("Grasa: %.1f%% (%.2f kg)", c.FatPercent, c.FatMassKg)
		line("Masa magra: %.2f kg", c.LeanMassKg)
		line("Diagnóstico: %s", c.Diagnostic)
	}

	if c := d.FiveComp; c != nil {
		section("Composición corporal (5 componentes)")
		if c.Complete {
			components := []struct {
				name string
				c    fivecomp.Component
			}{
				{"Grasa", c.Fat}, {"Músculo", c.Muscle}, {"Ósea", c.Bone}, {"Residual", c.Residual}, {"Piel", c.Skin},
			}
			for _, comp := range components {
				line("%-9s %6.2f kg  %5.1f%%  %s", comp.name, comp.c.MassKg, comp.c.Percent, comp.c.Diagnostic)
			}
			line("Suma de componentes: %.2f kg (diferencia %.2f kg)", c.SumOfComponentsKg, c.DifferenceKg)
		}
		if c.Error != "" {
			line("Aviso: %s", c.Error)
		}
	}

	if s := d.Somatotype; s != nil {
		section("Somatotipo (Heath-Carter)")
		line("Endomorfia %.1f  Mesomorfia %.1f  Ectomorfia %.1f", s.Endomorphy, s.Mesomorphy, s.Ectomorphy)
		line("Clasificación: %s", s.Classification)
		pdf.MultiCell(0, 6, tr(s.Explanation), "", "L", false)
	}

	if d.Notes != "" {
		section("Observaciones")
		pdf.MultiCell(0, 6, tr(d.Notes), "", "L", false)
	}

	return pdf.Output(w)
}
