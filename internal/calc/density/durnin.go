// Package density estimates body density from skinfold thicknesses.
package density

import (
	"math"

	"github.com/idalopban/ComVida/internal/calc/anthro"
)

type coef struct {
	intercept float64
	slope     float64
}

// Durnin & Womersley (1974), indexed by age band:
// <17, 17-19, 20-29, 30-39, 40-49, 50+.
var (
	durninMale = [6]coef{
		{1.1533, 0.0643},
		{1.1620, 0.0630},
		{1.1631, 0.0632},
		{1.1422, 0.0544},
		{1.1620, 0.0700},
		{1.1715, 0.0779},
	}
	durninFemale = [6]coef{
		{1.1369, 0.0598},
		{1.1549, 0.0678},
		{1.1599, 0.0717},
		{1.1423, 0.0632},
		{1.1333, 0.0612},
		{1.1339, 0.0645},
	}
)

// ISAK variant without the age correction.
var (
	durninNoAgeMale   = coef{1.1765, 0.0744}
	durninNoAgeFemale = coef{1.1567, 0.0717}
)

func ageBand(age int) int {
	switch {
	case age < 17:
		return 0
	case age <= 19:
		return 1
	case age <= 29:
		return 2
	case age <= 39:
		return 3
	case age <= 49:
		return 4
	default:
		return 5
	}
}

// DurninWomersley returns density for L = log10(sum of 4 skinfolds).
func DurninWomersley(sex anthro.Sex, age int, logSum float64) float64 {
	table := durninFemale
	if sex == anthro.Male {
		table = durninMale
	}
	c := table[ageBand(age)]
	return c.intercept - c.slope*logSum
}

func DurninNoAge(sex anthro.Sex, logSum float64) float64 {
	c := durninNoAgeFemale
	if sex == anthro.Male {
		c = durninNoAgeMale
	}
	return c.intercept - c.slope*logSum
}

// LogSum returns log10 of the Durnin 4-site sum, ok=false when the sum is not
// positive.
func LogSum(s anthro.Skinfolds) (float64, bool) {
	sum := s.DurninSum()
	if sum <= 0 {
		return 0, false
	}
	return math.Log10(sum), true
}
