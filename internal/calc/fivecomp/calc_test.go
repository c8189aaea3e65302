package fivecomp

import (
	"testing"

	"github.com/idalopban/ComVida/internal/calc/anthro"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maleInput() Input {
	return Input{
		Subject: anthro.Subject{Sex: anthro.Male, Age: 25, WeightKg: 70, HeightCm: 170, Race: anthro.Asian},
		Skinfolds: anthro.Skinfolds{
			Triceps:     anthro.Ptr(10),
			Biceps:      anthro.Ptr(5),
			Subscapular: anthro.Ptr(12),
			Suprailiac:  anthro.Ptr(8),
		},
		Diameters: anthro.Diameters{Wrist: anthro.Ptr(5.5), Femur: anthro.Ptr(9.5)},
	}
}

func TestCalculate_Male(t *testing.T) {
	res := Calculate(maleInput())

	require.True(t, res.Complete)
	assert.Empty(t, res.Error)
	assert.InDelta(t, 1.0616213, res.BodyDensity, 1e-6)
	assert.InDelta(t, 16.2679, res.FatPercentSiri, 1e-3)
	assert.InDelta(t, 16.2736, res.FatPercentBrozek, 1e-3)
	assert.InDelta(t, 11.3876, res.Fat.MassKg, 1e-3)
	assert.InDelta(t, 10.8670, res.Bone.MassKg, 1e-3)
	assert.InDelta(t, 16.8, res.Residual.MassKg, 1e-9)
	assert.InDelta(t, 2.45, res.Skin.MassKg, 1e-9)
	assert.InDelta(t, 28.4954, res.Muscle.MassKg, 1e-3)

	assert.InDelta(t, 70, res.SumOfComponentsKg, 1e-6)
	assert.InDelta(t, 0, res.DifferenceKg, 1e-6)

	assert.Equal(t, "Saludable", res.Fat.Diagnostic)
	assert.Equal(t, "Promedio", res.Muscle.Diagnostic)
	assert.Equal(t, "Muy Robusto", res.Bone.Diagnostic)
	assert.Equal(t, Diagnose(KindResidual, anthro.Male, 0), res.Residual.Diagnostic)
}

func TestCalculate_Female(t *testing.T) {
	in := Input{
		Subject: anthro.Subject{Sex: anthro.Female, Age: 40, WeightKg: 60, HeightCm: 160},
		Skinfolds: anthro.Skinfolds{
			Triceps: anthro.Ptr(18), Biceps: anthro.Ptr(10), Subscapular: anthro.Ptr(16), Suprailiac: anthro.Ptr(16),
		},
		Diameters: anthro.Diameters{Wrist: anthro.Ptr(5), Femur: anthro.Ptr(8.5)},
	}
	res := Calculate(in)

	require.True(t, res.Complete)
	assert.InDelta(t, 12.6, res.Residual.MassKg, 1e-9)
	assert.InDelta(t, 18.5718, res.Fat.MassKg, 1e-3)
	assert.InDelta(t, 8.6051, res.Bone.MassKg, 1e-3)
	assert.InDelta(t, 18.1231, res.Muscle.MassKg, 1e-3)
	assert.Equal(t, "Elevado", res.Fat.Diagnostic)
	assert.Equal(t, "Promedio", res.Muscle.Diagnostic)
	assert.Equal(t, "Promedio (Robusto)", res.Bone.Diagnostic)
}

func TestCalculate_RaceHasNoEffect(t *testing.T) {
	a := maleInput()
	b := maleInput()
	b.Subject.Race = anthro.African
	assert.Equal(t, Calculate(a), Calculate(b))
}

func TestCalculate_AbortStages(t *testing.T) {
	in := maleInput()
	in.Subject.HeightCm = 0
	res := Calculate(in)
	assert.False(t, res.Complete)
	assert.Equal(t, ErrWeightHeight, res.Error)

	in = maleInput()
	in.Skinfolds = anthro.Skinfolds{}
	res = Calculate(in)
	assert.False(t, res.Complete)
	assert.Equal(t, ErrNoSkinfolds, res.Error)

	in = maleInput()
	in.Diameters.Wrist = nil
	res = Calculate(in)
	assert.False(t, res.Complete)
	assert.Equal(t, ErrNoDiameters, res.Error)
	assert.Equal(t, 0.0, res.Muscle.MassKg)
}

func TestCalculate_MuscleClampedWhenComponentsExceedWeight(t *testing.T) {
	in := Input{
		Subject: anthro.Subject{Sex: anthro.Male, Age: 30, WeightKg: 40, HeightCm: 190},
		Skinfolds: anthro.Skinfolds{
			Triceps: anthro.Ptr(50), Biceps: anthro.Ptr(50), Subscapular: anthro.Ptr(50), Suprailiac: anthro.Ptr(50),
		},
		Diameters: anthro.Diameters{Wrist: anthro.Ptr(7), Femur: anthro.Ptr(11)},
	}
	res := Calculate(in)

	assert.True(t, res.Complete)
	assert.Equal(t, 0.0, res.Muscle.MassKg)
	assert.Equal(t, ErrExceedsWeight, res.Error)
	// Discrepancy is surfaced, not normalised away.
	assert.InDelta(t, 44.7358, res.SumOfComponentsKg, 1e-3)
	assert.InDelta(t, -4.7358, res.DifferenceKg, 1e-3)
}

func TestDiagnose_Cutoffs(t *testing.T) {
	assert.Equal(t, "Muy Bajo (Esencial)", Diagnose(KindFat, anthro.Male, 7.9))
	assert.Equal(t, "Bajo (Atlético)", Diagnose(KindFat, anthro.Male, 15))
	assert.Equal(t, "Saludable", Diagnose(KindFat, anthro.Male, 22))
	assert.Equal(t, "Elevado", Diagnose(KindFat, anthro.Male, 28))
	assert.Equal(t, "Muy Elevado", Diagnose(KindFat, anthro.Male, 28.1))
	assert.Equal(t, "Muy Bajo (Esencial)", Diagnose(KindFat, anthro.Female, 14.9))
	assert.Equal(t, "Muy Elevado", Diagnose(KindFat, anthro.Female, 38.5))

	assert.Equal(t, "Bajo", Diagnose(KindMuscle, anthro.Male, 37.9))
	assert.Equal(t, "Alto", Diagnose(KindMuscle, anthro.Male, 50))
	assert.Equal(t, "Muy Alto (Hipertrofia)", Diagnose(KindMuscle, anthro.Male, 50.1))
	assert.Equal(t, "Bajo", Diagnose(KindMuscle, anthro.Female, 29))
	assert.Equal(t, "Alto", Diagnose(KindMuscle, anthro.Female, 42))

	assert.Equal(t, "Ligero", Diagnose(KindBone, anthro.Male, 11.9))
	assert.Equal(t, "Promedio (Robusto)", Diagnose(KindBone, anthro.Male, 12))
	assert.Equal(t, "Promedio (Robusto)", Diagnose(KindBone, anthro.Female, 15))
	assert.Equal(t, "Muy Robusto", Diagnose(KindBone, anthro.Female, 15.1))

	assert.NotEmpty(t, Diagnose(KindSkin, anthro.Female, 3.5))
}

func TestCalculate_Idempotent(t *testing.T) {
	assert.Equal(t, Calculate(maleInput()), Calculate(maleInput()))
}
