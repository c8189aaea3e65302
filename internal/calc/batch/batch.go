// Package batch evaluates many subjects at once, from JSON or from an XLSX
// sheet.
package batch

import (
	"errors"

	"github.com/idalopban/ComVida/internal/calc/anthro"
	"github.com/idalopban/ComVida/internal/calc/bmi"
	"github.com/idalopban/ComVida/internal/calc/energy"
	"github.com/idalopban/ComVida/internal/calc/twocomp"
)

var ErrNoItems = errors.New("no items")

type Item struct {
	Name      string           `json:"name"`
	Subject   anthro.Subject   `json:"subject"`
	Skinfolds anthro.Skinfolds `json:"skinfolds"`
	Activity  energy.Activity  `json:"activity,omitempty"`
	Formula   energy.Formula   `json:"formula,omitempty"`
}

type Row struct {
	Name        string         `json:"name"`
	BMI         bmi.Result     `json:"bmi"`
	Composition twocomp.Result `json:"composition"`
	TotalKcal   float64        `json:"total_kcal"`
	Error       string         `json:"error,omitempty"`
}

type Input struct {
	Items []Item `json:"items"`
}

type Result struct {
	Count   int   `json:"count"`
	Results []Row `json:"results"`
}

// Calculate evaluates every item. An invalid subject is reported on its own
// row and does not stop the batch.
func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, ErrNoItems
	}
	out := Result{Results: make([]Row, 0, len(in.Items))}
	for _, item := range in.Items {
		out.Results = append(out.Results, Evaluate(item))
	}
	out.Count = len(out.Results)
	return out, nil
}

func Evaluate(item Item) Row {
	row := Row{Name: item.Name}
	if err := item.Subject.Validate(); err != nil {
		row.Error = err.Error()
		return row
	}
	if err := item.Skinfolds.Validate(); err != nil {
		row.Error = err.Error()
		return row
	}
	s := item.Subject
	row.BMI = bmi.Calculate(bmi.Input{WeightKg: s.WeightKg, HeightCm: s.HeightCm})
	row.Composition = twocomp.Calculate(twocomp.Input{Subject: s, Skinfolds: item.Skinfolds})
	row.TotalKcal = energy.TDEE(s.Sex, s.WeightKg, s.HeightCm, s.Age, item.Activity, item.Formula, row.Composition.LeanMassKg)
	return row
}
