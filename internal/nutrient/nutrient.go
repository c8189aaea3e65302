// Package nutrient holds the nutrient vector shared by foods and diet items.
// Food values are per 100 g of edible portion.
package nutrient

type Nutrients struct {
	Kcal         float64 `json:"kcal"`
	Kj           float64 `json:"kj"`
	Protein      float64 `json:"proteinas"`
	Fat          float64 `json:"grasas"`
	Carbs        float64 `json:"carbohidratos"`
	Fiber        float64 `json:"fibra"`
	Water        float64 `json:"agua"`
	Calcium      float64 `json:"calcio"`
	Phosphorus   float64 `json:"fosforo"`
	Zinc         float64 `json:"zinc"`
	Iron         float64 `json:"hierro"`
	VitaminC     float64 `json:"vitamina_c"`
	Sodium       float64 `json:"sodio"`
	Potassium    float64 `json:"potasio"`
	BetaCarotene float64 `json:"beta_caroteno"`
	VitaminA     float64 `json:"vitamina_a"`
	Thiamin      float64 `json:"tiamina"`
	Riboflavin   float64 `json:"riboflavina"`
	Niacin       float64 `json:"niacina"`
	FolicAcid    float64 `json:"acido_folico"`
}

// Field names one nutrient column. Label is the display name used in
// tables and workbooks.
type Field struct {
	Label string
	get   func(*Nutrients) *float64
}

func (f Field) Value(n Nutrients) float64 { return *f.get(&n) }

// Fields lists every nutrient in display order.
var Fields = []Field{
	{"Kcal", func(n *Nutrients) *float64 { return &n.Kcal }},
	{"Kj", func(n *Nutrients) *float64 { return &n.Kj }},
	{"Proteínas", func(n *Nutrients) *float64 { return &n.Protein }},
	{"Grasas", func(n *Nutrients) *float64 { return &n.Fat }},
	{"Carbohidratos", func(n *Nutrients) *float64 { return &n.Carbs }},
	{"Fibra", func(n *Nutrients) *float64 { return &n.Fiber }},
	{"Agua", func(n *Nutrients) *float64 { return &n.Water }},
	{"Calcio", func(n *Nutrients) *float64 { return &n.Calcium }},
	{"Fósforo", func(n *Nutrients) *float64 { return &n.Phosphorus }},
	{"Zinc", func(n *Nutrients) *float64 { return &n.Zinc }},
	{"Hierro", func(n *Nutrients) *float64 { return &n.Iron }},
	{"Vitamina C", func(n *Nutrients) *float64 { return &n.VitaminC }},
	{"Sodio", func(n *Nutrients) *float64 { return &n.Sodium }},
	{"Potasio", func(n *Nutrients) *float64 { return &n.Potassium }},
	{"Beta-Caroteno", func(n *Nutrients) *float64 { return &n.BetaCarotene }},
	{"Vitamina A", func(n *Nutrients) *float64 { return &n.VitaminA }},
	{"Tiamina", func(n *Nutrients) *float64 { return &n.Thiamin }},
	{"Riboflavina", func(n *Nutrients) *float64 { return &n.Riboflavin }},
	{"Niacina", func(n *Nutrients) *float64 { return &n.Niacin }},
	{"Acido Folico", func(n *Nutrients) *float64 { return &n.FolicAcid }},
}

// Micronutrients are the fields summarised separately from energy and the
// three macronutrients.
func Micronutrients() []Field {
	return Fields[5:]
}

func (n Nutrients) Scale(factor float64) Nutrients {
	out := n
	for _, f := range Fields {
		*f.get(&out) *= factor
	}
	return out
}

func (n Nutrients) Add(o Nutrients) Nutrients {
	out := n
	for _, f := range Fields {
		*f.get(&out) += f.Value(o)
	}
	return out
}

// Set assigns a value by label. Unknown labels are ignored.
func (n *Nutrients) Set(label string, v float64) bool {
	for _, f := range Fields {
		if f.Label == label {
			*f.get(n) = v
			return true
		}
	}
	return false
}
