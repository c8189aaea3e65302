package bmi

type Input struct {
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
}

type Result struct {
	BMI   float64 `json:"bmi"`
	Label string  `json:"label"`
}

const NoData = "Sin datos"

// Calculate never fails: missing weight or height yields (0, "Sin datos").
func Calculate(in Input) Result {
	if in.WeightKg <= 0 || in.HeightCm <= 0 {
		return Result{BMI: 0, Label: NoData}
	}
	h := in.HeightCm / 100.0
	v := in.WeightKg / (h * h)
	return Result{BMI: v, Label: Label(v)}
}

func Label(v float64) string {
	switch {
	case v < 18.5:
		return "Bajo Peso"
	case v < 25:
		return "Peso Normal"
	case v < 30:
		return "Sobrepeso"
	default:
		return "Obesidad"
	}
}
