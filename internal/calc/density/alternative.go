package density

import (
	"errors"
	"fmt"

	"github.com/idalopban/ComVida/internal/calc/anthro"
)

type Method string

const (
	MethodDurninWomersley Method = "durnin-womersley"
	MethodDurninISAK      Method = "durnin-isak"

	MethodSloan1967              Method = "sloan-1967"
	MethodWilmoreBehnke1969      Method = "wilmore-behnke-1969"
	MethodKatchMcArdle1973       Method = "katch-mcardle-1973"
	MethodSloanBurtBlyth1962     Method = "sloan-burt-blyth-1962"
	MethodWilmoreBehnke1970      Method = "wilmore-behnke-1970"
	MethodJacksonPollockWard1980 Method = "jackson-pollock-ward-1980"
)

var (
	ErrIncompatibleSex = errors.New("formula not compatible with sex")
	ErrMissingSkinfold = errors.New("missing skinfold measurement")
	ErrMissingAge      = errors.New("missing age")
	ErrUnknownMethod   = errors.New("unknown density method")
)

type site struct {
	name  string
	value *float64
}

// Alternative evaluates one of the sex-specific regressions. Any required
// site that is absent or not positive is an error, never a partial estimate.
func Alternative(method Method, sex anthro.Sex, age int, s anthro.Skinfolds) (float64, error) {
	var want anthro.Sex
	var sites []site
	switch method {
	case MethodSloan1967:
		want, sites = anthro.Male, []site{{"Muslo (frontal)", s.ThighFront}, {"Subescapular", s.Subscapular}}
	case MethodWilmoreBehnke1969:
		want, sites = anthro.Male, []site{{"Abdominal", s.Abdominal}, {"Muslo (frontal)", s.ThighFront}}
	case MethodKatchMcArdle1973:
		want, sites = anthro.Male, []site{{"Tricipital", s.Triceps}, {"Subescapular", s.Subscapular}, {"Abdominal", s.Abdominal}}
	case MethodSloanBurtBlyth1962:
		want, sites = anthro.Female, []site{{"Suprailíaco", s.Suprailiac}, {"Tricipital", s.Triceps}}
	case MethodWilmoreBehnke1970:
		want, sites = anthro.Female, []site{{"Subescapular", s.Subscapular}, {"Tricipital", s.Triceps}, {"Muslo (frontal)", s.ThighFront}}
	case MethodJacksonPollockWard1980:
		want, sites = anthro.Female, []site{{"Tricipital", s.Triceps}, {"Suprailíaco", s.Suprailiac}, {"Muslo (frontal)", s.ThighFront}}
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	if sex != want {
		return 0, fmt.Errorf("%w: %s requires %s", ErrIncompatibleSex, method, want)
	}
	for _, st := range sites {
		if !anthro.Present(st.value) {
			return 0, fmt.Errorf("%w: %s", ErrMissingSkinfold, st.name)
		}
	}

	v := func(i int) float64 { return *sites[i].value }
	switch method {
	case MethodSloan1967:
		return 1.1043 - 0.001327*v(0) - 0.001310*v(1), nil
	case MethodWilmoreBehnke1969:
		return 1.08543 - 0.000886*v(0) - 0.00040*v(1), nil
	case MethodKatchMcArdle1973:
		return 1.09665 - 0.00103*v(0) - 0.00056*v(1) - 0.00054*v(2), nil
	case MethodSloanBurtBlyth1962:
		return 1.0764 - 0.00081*v(0) - 0.00088*v(1), nil
	case MethodWilmoreBehnke1970:
		return 1.06234 - 0.00068*v(0) - 0.00039*v(1) - 0.00025*v(2), nil
	default:
		if age <= 0 {
			return 0, fmt.Errorf("%w: %s", ErrMissingAge, method)
		}
		sum := v(0) + v(1) + v(2)
		return 1.0994921 - 0.0009929*sum + 0.0000023*sum*sum - 0.0001392*float64(age), nil
	}
}
