package anthro

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurninSum_IgnoresOtherSites(t *testing.T) {
	s := Skinfolds{
		Triceps:     Ptr(10),
		Biceps:      Ptr(5),
		Subscapular: Ptr(12),
		Suprailiac:  Ptr(8),
		Abdominal:   Ptr(20),
	}
	assert.InDelta(t, 35.0, s.DurninSum(), 1e-9)
}

func TestValueAndPresent(t *testing.T) {
	assert.Equal(t, 0.0, Value(nil))
	assert.False(t, Present(nil))
	assert.False(t, Present(Ptr(0)))
	assert.True(t, Present(Ptr(0.1)))
}

func TestSubjectValidate(t *testing.T) {
	ok := Subject{Sex: Female, Age: 30, WeightKg: 60, HeightCm: 160}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.Sex = "X"
	assert.Error(t, bad.Validate())

	bad = ok
	bad.WeightKg = 0
	assert.Error(t, bad.Validate())

	bad = ok
	bad.Age = 0
	assert.Error(t, bad.Validate())
}

func TestSites_Order(t *testing.T) {
	sites := Skinfolds{Triceps: Ptr(1)}.Sites()
	assert.Len(t, sites, 7)
	assert.Equal(t, "Tricipital", sites[0].Label)
	assert.Nil(t, sites[1].Value)
}

func TestMeasurementsValidate(t *testing.T) {
	ok := Measurements{
		Skinfolds: Skinfolds{Triceps: Ptr(10), Biceps: Ptr(0)},
		Diameters: Diameters{Femur: Ptr(9.5)},
	}
	assert.NoError(t, ok.Validate())
	assert.NoError(t, Measurements{}.Validate())

	for _, m := range []Measurements{
		{Skinfolds: Skinfolds{Triceps: Ptr(-20), Biceps: Ptr(10)}},
		{Circumferences: Circumferences{CalfMax: Ptr(-1)}},
		{Diameters: Diameters{Wrist: Ptr(-0.1)}},
	} {
		err := m.Validate()
		assert.ErrorIs(t, err, ErrNegativeMeasurement)
	}
	assert.ErrorContains(t, Skinfolds{Triceps: Ptr(-20)}.Validate(), "Tricipital")
}

func TestMeasurementsTaken(t *testing.T) {
	assert.False(t, Measurements{}.Taken())
	assert.True(t, Measurements{Diameters: Diameters{Wrist: Ptr(0)}}.Taken())
	assert.True(t, Measurements{Skinfolds: Skinfolds{Triceps: Ptr(10)}}.Taken())
}
