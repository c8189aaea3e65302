// Package fat converts body density into percent body fat.
package fat

const MaxPercent = 60.0

// Siri (1961). Clamped to [0, 60]. A non-positive density returns 0, so callers
// that need to tell "no fat" from "bad density" must check the density first.
func Siri(density float64) float64 {
	if density <= 0 {
		return 0
	}
	p := (4.95/density - 4.5) * 100
	if p < 0 {
		return 0
	}
	if p > MaxPercent {
		return MaxPercent
	}
	return p
}

// Brozek (1963). Reported alongside Siri, not clamped.
func Brozek(density float64) float64 {
	if density <= 0 {
		return 0
	}
	return (4.57/density - 4.142) * 100
}
