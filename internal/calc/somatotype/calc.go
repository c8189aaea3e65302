// Package somatotype computes the Heath-Carter anthropometric somatotype.
package somatotype

import (
	"math"
	"sort"

	"github.com/idalopban/ComVida/internal/calc/anthro"
)

type Input struct {
	WeightKg       float64               `json:"weight_kg"`
	HeightCm       float64               `json:"height_cm"`
	Skinfolds      anthro.Skinfolds      `json:"skinfolds"`
	Circumferences anthro.Circumferences `json:"circumferences"`
	Diameters      anthro.Diameters      `json:"diameters"`
}

type Result struct {
	Endomorphy     float64 `json:"endomorphy"`
	Mesomorphy     float64 `json:"mesomorphy"`
	Ectomorphy     float64 `json:"ectomorphy"`
	Classification string  `json:"classification"`
	Explanation    string  `json:"explanation"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
}

const (
	Endomorph = "Endomorfo"
	Mesomorph = "Mesomorfo"
	Ectomorph = "Ectomorfo"
	Central   = "Central"

	floor = 0.1
)

func Calculate(in Input) Result {
	endo := round1(Endomorphy(in.Skinfolds, in.HeightCm))
	meso := round1(Mesomorphy(in.Skinfolds, in.Circumferences, in.Diameters, in.HeightCm))
	ecto := round1(Ectomorphy(in.HeightCm, in.WeightKg))
	class := Classify(endo, meso, ecto)
	x, y := Plot(endo, meso, ecto)
	return Result{
		Endomorphy:     endo,
		Mesomorphy:     meso,
		Ectomorphy:     ecto,
		Classification: class,
		Explanation:    Explain(class),
		X:              x,
		Y:              y,
	}
}

func Endomorphy(s anthro.Skinfolds, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	x := (anthro.Value(s.Triceps) + anthro.Value(s.Subscapular) + anthro.Value(s.Suprailiac)) * (170.18 / heightCm)
	if x <= 0 {
		return 0
	}
	v := -0.7182 + 0.1451*x - 0.00068*x*x + 0.0000014*x*x*x
	return math.Max(v, floor)
}

func Mesomorphy(s anthro.Skinfolds, c anthro.Circumferences, d anthro.Diameters, heightCm float64) float64 {
	humerus := anthro.Value(d.Humerus)
	femur := anthro.Value(d.Femur)
	arm := anthro.Value(c.ArmRelaxed) - anthro.Value(s.Triceps)/10
	calf := anthro.Value(c.CalfMax) - anthro.Value(s.CalfMedial)/10
	if humerus <= 0 || femur <= 0 || arm <= 0 || calf <= 0 {
		return 0
	}
	v := 0.858*humerus + 0.601*femur + 0.188*arm + 0.161*calf - 0.131*heightCm + 4.5
	return math.Max(v, floor)
}

func Ectomorphy(heightCm, weightKg float64) float64 {
	if weightKg <= 0 {
		return floor
	}
	hwr := heightCm / math.Cbrt(weightKg)
	switch {
	case hwr > 40.75:
		return 0.732*hwr - 28.58
	case hwr > 38.25:
		return 0.463*hwr - 17.63
	default:
		return floor
	}
}

// Classify names the dominant component(s). Ties keep the order
// endo, meso, ecto.
func Classify(endo, meso, ecto float64) string {
	comps := []struct {
		name string
		v    float64
	}{{Endomorph, endo}, {Mesomorph, meso}, {Ectomorph, ecto}}
	sort.SliceStable(comps, func(i, j int) bool { return comps[i].v > comps[j].v })

	topClose := comps[0].v-comps[1].v < 1.0
	nextClose := comps[1].v-comps[2].v < 1.0
	switch {
	case topClose && nextClose:
		return Central
	case topClose:
		return comps[0].name + "-" + comps[1].name
	case nextClose:
		return comps[0].name + " balanceado"
	default:
		return comps[0].name + " (dominante)"
	}
}

// Plot returns somatochart coordinates.
func Plot(endo, meso, ecto float64) (x, y float64) {
	return ecto - endo, 2*meso - (endo + ecto)
}

// round1 rounds half to even, so 0.25 gives 0.2.
func round1(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
