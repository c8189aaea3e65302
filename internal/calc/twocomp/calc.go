// Package twocomp splits body mass into fat and lean mass using Durnin &
// Womersley (age-banded) density and the Siri equation.
package twocomp

import (
	"github.com/idalopban/ComVida/internal/calc/anthro"
	"github.com/idalopban/ComVida/internal/calc/density"
	"github.com/idalopban/ComVida/internal/calc/fat"
)

type Input struct {
	Subject   anthro.Subject   `json:"subject"`
	Skinfolds anthro.Skinfolds `json:"skinfolds"`
}

type Result struct {
	FatMassKg  float64 `json:"fat_mass_kg"`
	LeanMassKg float64 `json:"lean_mass_kg"`
	FatPercent float64 `json:"fat_percent"`
	Density    float64 `json:"density"`
	Diagnostic string  `json:"diagnostic"`
}

const (
	NoSkinfolds  = "Sin datos de pliegues"
	NoAge        = "Sin datos de edad"
	DensityError = "Error en cálculo de densidad"
)

// Calculate never fails; missing skinfolds or age give a zero result with a
// "Sin datos" diagnostic.
func Calculate(in Input) Result {
	logSum, ok := density.LogSum(in.Skinfolds)
	if !ok {
		return Result{Diagnostic: NoSkinfolds}
	}
	if in.Subject.Age <= 0 {
		return Result{Diagnostic: NoAge}
	}
	d := density.DurninWomersley(in.Subject.Sex, in.Subject.Age, logSum)
	if d <= 0 {
		return Result{Diagnostic: DensityError}
	}
	pct := fat.Siri(d)
	fm := in.Subject.WeightKg * pct / 100
	return Result{
		FatMassKg:  fm,
		LeanMassKg: in.Subject.WeightKg - fm,
		FatPercent: pct,
		Density:    d,
		Diagnostic: Diagnose(pct),
	}
}

// Diagnose bands are the same for both sexes.
func Diagnose(pct float64) string {
	switch {
	case pct < 10:
		return "Nivel de grasa muy bajo"
	case pct < 20:
		return "Nivel de grasa saludable (Atleta)"
	case pct < 30:
		return "Nivel de grasa saludable (Promedio)"
	case pct < 40:
		return "Nivel de grasa elevado (Sobrepeso)"
	default:
		return "Nivel de grasa muy elevado (Obesidad)"
	}
}
