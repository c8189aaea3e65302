package density

import (
	"fmt"

	"github.com/idalopban/ComVida/internal/calc/anthro"
	"github.com/idalopban/ComVida/internal/calc/fat"
)

type Input struct {
	Method    Method           `json:"method"`
	Sex       anthro.Sex       `json:"sex"`
	Age       int              `json:"age"`
	Skinfolds anthro.Skinfolds `json:"skinfolds"`
}

type Result struct {
	Density    float64 `json:"density"`
	FatPercent float64 `json:"fat_percent"`
	MethodUsed Method  `json:"method_used"`
	Notes      string  `json:"notes"`
}

func Calculate(in Input) (Result, error) {
	if !in.Sex.Valid() {
		return Result{}, fmt.Errorf("invalid sex %q", in.Sex)
	}
	if in.Method == "" {
		in.Method = MethodDurninWomersley
	}

	var d float64
	var notes string
	switch in.Method {
	case MethodDurninWomersley, MethodDurninISAK:
		logSum, ok := LogSum(in.Skinfolds)
		if !ok {
			return Result{}, fmt.Errorf("%w: suma de 4 pliegues", ErrMissingSkinfold)
		}
		if in.Method == MethodDurninISAK {
			d = DurninNoAge(in.Sex, logSum)
			notes = "Durnin & Womersley (1974) sin corrección por edad (ISAK)."
		} else {
			if in.Age <= 0 {
				return Result{}, fmt.Errorf("%w: %s", ErrMissingAge, in.Method)
			}
			d = DurninWomersley(in.Sex, in.Age, logSum)
			notes = "Durnin & Womersley (1974) por grupo de edad."
		}
	default:
		var err error
		d, err = Alternative(in.Method, in.Sex, in.Age, in.Skinfolds)
		if err != nil {
			return Result{}, err
		}
		notes = "Ecuación de regresión alternativa por sexo."
	}
	if d <= 0 {
		return Result{}, fmt.Errorf("non-positive density %.4f", d)
	}

	return Result{
		Density:    d,
		FatPercent: fat.Siri(d),
		MethodUsed: in.Method,
		Notes:      notes,
	}, nil
}
