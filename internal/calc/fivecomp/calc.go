// Package fivecomp implements the ISAK five-compartment (Kerr) model:
// fat, muscle, bone, residual and skin mass.
package fivecomp

import (
	"math"

	"github.com/idalopban/ComVida/internal/calc/anthro"
	"github.com/idalopban/ComVida/internal/calc/density"
	"github.com/idalopban/ComVida/internal/calc/fat"
)

const (
	ErrWeightHeight  = "Peso o Talla deben ser mayores a 0."
	ErrNoSkinfolds   = "Pliegues para DC (Durnin) no ingresados."
	ErrDensity       = "Error en cálculo de Densidad Corporal."
	ErrNoDiameters   = "Diámetros para Masa Ósea (Rocha) no ingresados."
	ErrBoneBase      = "Error en cálculo de Masa Ósea."
	ErrExceedsWeight = "La suma de MG, MO, MR y MP supera el peso total. Revise las mediciones."
	skinFraction     = 0.035
	residualMale     = 0.24
	residualFemale   = 0.21
	rochaCoefficient = 3.02
	rochaExponent    = 0.712
	rochaScale       = 400.0
)

type Input struct {
	Subject   anthro.Subject   `json:"subject"`
	Skinfolds anthro.Skinfolds `json:"skinfolds"`
	Diameters anthro.Diameters `json:"diameters"`
}

type Component struct {
	MassKg     float64 `json:"mass_kg"`
	Percent    float64 `json:"percent"`
	Diagnostic string  `json:"diagnostic"`
}

type Result struct {
	Fat      Component `json:"fat"`
	Muscle   Component `json:"muscle"`
	Bone     Component `json:"bone"`
	Residual Component `json:"residual"`
	Skin     Component `json:"skin"`

	FatPercentSiri    float64 `json:"fat_percent_siri"`
	FatPercentBrozek  float64 `json:"fat_percent_brozek"`
	BodyDensity       float64 `json:"body_density"`
	SumOfComponentsKg float64 `json:"sum_of_components_kg"`
	DifferenceKg      float64 `json:"difference_kg"`

	// Complete is false when a stage aborted. Error can still be set on a
	// complete result: the muscle clamp is advisory.
	Complete bool   `json:"complete"`
	Error    string `json:"error,omitempty"`
}

func Calculate(in Input) Result {
	s := in.Subject
	if s.WeightKg <= 0 || s.HeightCm <= 0 {
		return Result{Error: ErrWeightHeight}
	}
	w := s.WeightKg
	hm := s.HeightCm / 100.0

	// Fat mass, Durnin without age correction.
	logSum, ok := density.LogSum(in.Skinfolds)
	if !ok {
		return Result{Error: ErrNoSkinfolds}
	}
	dc := density.DurninNoAge(s.Sex, logSum)
	if dc <= 0 {
		return Result{Error: ErrDensity}
	}
	siri := fat.Siri(dc)
	fatKg := siri / 100 * w

	// Bone mass, Rocha (1975). Diameters arrive in cm.
	if !anthro.Present(in.Diameters.Wrist) || !anthro.Present(in.Diameters.Femur) {
		return Result{Error: ErrNoDiameters, BodyDensity: dc, FatPercentSiri: siri}
	}
	wrist := *in.Diameters.Wrist / 100
	femur := *in.Diameters.Femur / 100
	base := hm * hm * wrist * femur * rochaScale
	if base <= 0 {
		return Result{Error: ErrBoneBase, BodyDensity: dc, FatPercentSiri: siri}
	}
	boneKg := rochaCoefficient * math.Pow(base, rochaExponent)

	residualKg := w * residualMale
	if s.Sex != anthro.Male {
		residualKg = w * residualFemale
	}
	skinKg := w * skinFraction

	res := Result{
		FatPercentSiri:   siri,
		FatPercentBrozek: fat.Brozek(dc),
		BodyDensity:      dc,
		Complete:         true,
	}
	muscleKg := w - (fatKg + boneKg + residualKg + skinKg)
	if muscleKg < 0 {
		muscleKg = 0
		res.Error = ErrExceedsWeight
	}

	res.Fat = component(KindFat, s.Sex, fatKg, w)
	res.Muscle = component(KindMuscle, s.Sex, muscleKg, w)
	res.Bone = component(KindBone, s.Sex, boneKg, w)
	res.Residual = component(KindResidual, s.Sex, residualKg, w)
	res.Skin = component(KindSkin, s.Sex, skinKg, w)

	res.SumOfComponentsKg = fatKg + muscleKg + boneKg + residualKg + skinKg
	res.DifferenceKg = w - res.SumOfComponentsKg
	return res
}

func component(kind Kind, sex anthro.Sex, massKg, weightKg float64) Component {
	pct := massKg / weightKg * 100
	return Component{MassKg: massKg, Percent: pct, Diagnostic: Diagnose(kind, sex, pct)}
}
