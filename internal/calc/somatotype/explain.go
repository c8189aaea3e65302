package somatotype

var explanations = map[string]string{
	"Central":               "Indica un desarrollo equilibrado entre los tres componentes (grasa, músculo y linealidad). Ningún componente domina claramente sobre los otros.",
	"Endomorfo (dominante)": "Predomina el componente endomorfo. Indica una alta adiposidad relativa, con tendencia a acumular grasa corporal.",
	"Mesomorfo (dominante)": "Predomina el componente mesomorfo. Indica un alto desarrollo músculo-esquelético relativo, con una complexión robusta y atlética.",
	"Ectomorfo (dominante)": "Predomina el componente ectomorfo. Indica una baja adiposidad y poco músculo, con una complexión delgada y lineal.",
	"Endomorfo balanceado":  "Predominio del componente endomorfo (grasa), con un desarrollo muscular y lineal similar entre sí.",
	"Mesomorfo balanceado":  "Predominio del componente mesomorfo (músculo), con un desarrollo de grasa y linealidad similar entre sí.",
	"Ectomorfo balanceado":  "Predominio del componente ectomorfo (linealidad), con un desarrollo de grasa y músculo similar entre sí.",
	"Endomorfo-Mesomorfo":   "Desarrollo alto y equilibrado en grasa y músculo, con menor linealidad. Complexión robusta y con grasa.",
	"Endomorfo-Ectomorfo":   "Clasificación poco común: equilibrio entre grasa y linealidad, con bajo desarrollo muscular.",
	"Mesomorfo-Ectomorfo":   "Desarrollo alto y equilibrado en músculo y linealidad, con baja adiposidad (complexión atlética-delgada).",
}

// Explain returns a short practitioner-facing description of a
// classification.
func Explain(classification string) string {
	if e, ok := explanations[classification]; ok {
		return e
	}
	// Pairs come out in sorted order, so "Mesomorfo-Endomorfo" reads the same
	// as "Endomorfo-Mesomorfo".
	for _, pair := range [][3]string{
		{Mesomorph + "-" + Endomorph, Endomorph + "-" + Mesomorph},
		{Ectomorph + "-" + Endomorph, Endomorph + "-" + Ectomorph},
		{Ectomorph + "-" + Mesomorph, Mesomorph + "-" + Ectomorph},
	} {
		if classification == pair[0] {
			return explanations[pair[1]]
		}
	}
	return "No se pudo generar una explicación para esta clasificación."
}
