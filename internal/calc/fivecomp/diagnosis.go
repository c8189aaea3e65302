package fivecomp

import "github.com/idalopban/ComVida/internal/calc/anthro"

type Kind string

const (
	KindFat      Kind = "fat"
	KindMuscle   Kind = "muscle"
	KindBone     Kind = "bone"
	KindResidual Kind = "residual"
	KindSkin     Kind = "skin"
)

// Diagnose labels a component from its share of body weight (percent).
func Diagnose(kind Kind, sex anthro.Sex, pct float64) string {
	switch kind {
	case KindFat:
		limits := [4]float64{8, 15, 22, 28}
		if sex != anthro.Male {
			limits = [4]float64{15, 22, 30, 38}
		}
		switch {
		case pct < limits[0]:
			return "Muy Bajo (Esencial)"
		case pct <= limits[1]:
			return "Bajo (Atlético)"
		case pct <= limits[2]:
			return "Saludable"
		case pct <= limits[3]:
			return "Elevado"
		default:
			return "Muy Elevado"
		}
	case KindMuscle:
		limits := [3]float64{38, 44, 50}
		if sex != anthro.Male {
			limits = [3]float64{30, 36, 42}
		}
		switch {
		case pct < limits[0]:
			return "Bajo"
		case pct <= limits[1]:
			return "Promedio"
		case pct <= limits[2]:
			return "Alto"
		default:
			return "Muy Alto (Hipertrofia)"
		}
	case KindBone:
		switch {
		case pct < 12:
			return "Ligero"
		case pct <= 15:
			return "Promedio (Robusto)"
		default:
			return "Muy Robusto"
		}
	case KindResidual:
		return "Componente fijo (según sexo)"
	case KindSkin:
		return "Componente constante (3,5% del peso)"
	}
	return ""
}
