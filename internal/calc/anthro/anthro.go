// Package anthro holds the measurement records consumed by the body
// composition calculators. Sites are optional: a nil pointer means the site
// was not measured, which is not the same as a measured zero.
package anthro

import (
	"errors"
	"fmt"
)

type Sex string

const (
	Male   Sex = "Masculino"
	Female Sex = "Femenino"
)

func (s Sex) Valid() bool {
	return s == Male || s == Female
}

// Race is kept for record compatibility. No formula reads it.
type Race string

const (
	Caucasian Race = "Caucásico"
	Asian     Race = "Asiático"
	African   Race = "Africano"
)

var ErrNegativeMeasurement = errors.New("measurement must not be negative")

type Subject struct {
	Sex      Sex     `json:"sex"`
	Age      int     `json:"age"`
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
	Race     Race    `json:"race,omitempty"`
}

func (s Subject) Validate() error {
	if !s.Sex.Valid() {
		return fmt.Errorf("invalid sex %q", s.Sex)
	}
	if s.Age < 1 {
		return fmt.Errorf("invalid age %d", s.Age)
	}
	if s.WeightKg <= 0 || s.HeightCm <= 0 {
		return fmt.Errorf("weight and height must be positive")
	}
	return nil
}

// Skinfolds in millimetres.
type Skinfolds struct {
	Triceps     *float64 `json:"tricipital,omitempty"`
	Biceps      *float64 `json:"bicipital,omitempty"`
	Subscapular *float64 `json:"subescapular,omitempty"`
	Suprailiac  *float64 `json:"suprailiaco,omitempty"`
	Abdominal   *float64 `json:"abdominal,omitempty"`
	ThighFront  *float64 `json:"muslo_frontal,omitempty"`
	CalfMedial  *float64 `json:"pantorrilla_medial,omitempty"`
}

// DurninSum is the 4-site sum used by Durnin & Womersley.
func (s Skinfolds) DurninSum() float64 {
	return Value(s.Biceps) + Value(s.Triceps) + Value(s.Subscapular) + Value(s.Suprailiac)
}

func (s Skinfolds) Sites() []Site {
	return []Site{
		{"Tricipital", s.Triceps},
		{"Bicipital", s.Biceps},
		{"Subescapular", s.Subscapular},
		{"Suprailíaco", s.Suprailiac},
		{"Abdominal", s.Abdominal},
		{"Muslo (frontal)", s.ThighFront},
		{"Pantorrilla Medial", s.CalfMedial},
	}
}

// Circumferences in centimetres.
type Circumferences struct {
	ArmRelaxed *float64 `json:"brazo_relajado,omitempty"`
	CalfMax    *float64 `json:"pantorrilla_maxima,omitempty"`
	ThighMid   *float64 `json:"muslo_medial,omitempty"`
}

func (c Circumferences) Sites() []Site {
	return []Site{
		{"Brazo (relajado)", c.ArmRelaxed},
		{"Pantorrilla (máxima)", c.CalfMax},
		{"Muslo (medial)", c.ThighMid},
	}
}

// Diameters are bone breadths in centimetres.
type Diameters struct {
	Humerus *float64 `json:"humero,omitempty"`
	Femur   *float64 `json:"femur,omitempty"`
	Wrist   *float64 `json:"muneca,omitempty"`
}

func (d Diameters) Sites() []Site {
	return []Site{
		{"Húmero (bi-epicondilar)", d.Humerus},
		{"Fémur (bi-condilar)", d.Femur},
		{"Muñeca (bi-estiloideo)", d.Wrist},
	}
}

// Site is a labelled measurement, used by exports.
type Site struct {
	Label string
	Value *float64
}

// Measurements groups everything taken in one anthropometric session.
type Measurements struct {
	Skinfolds      Skinfolds      `json:"skinfolds"`
	Circumferences Circumferences `json:"circumferences"`
	Diameters      Diameters      `json:"diameters"`
}

func (s Skinfolds) Validate() error {
	return validateSites(s.Sites())
}

func (c Circumferences) Validate() error {
	return validateSites(c.Sites())
}

func (d Diameters) Validate() error {
	return validateSites(d.Sites())
}

// Validate rejects negative sites. Unmeasured sites are fine.
func (m Measurements) Validate() error {
	if err := m.Skinfolds.Validate(); err != nil {
		return err
	}
	if err := m.Circumferences.Validate(); err != nil {
		return err
	}
	return m.Diameters.Validate()
}

// Taken reports whether any site of the session was recorded.
func (m Measurements) Taken() bool {
	for _, sites := range [][]Site{m.Skinfolds.Sites(), m.Circumferences.Sites(), m.Diameters.Sites()} {
		for _, st := range sites {
			if st.Value != nil {
				return true
			}
		}
	}
	return false
}

func validateSites(sites []Site) error {
	for _, st := range sites {
		if st.Value != nil && *st.Value < 0 {
			return fmt.Errorf("%w: %s = %g", ErrNegativeMeasurement, st.Label, *st.Value)
		}
	}
	return nil
}

// Value reads a site; unmeasured sites read as 0.
func Value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// Present reports whether the site was measured with a usable value.
func Present(p *float64) bool {
	return p != nil && *p > 0
}

func Ptr(v float64) *float64 {
	return &v
}
