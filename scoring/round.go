package scoring

import "math"

// round rounds half up toward positive infinity, so round(-2.5) == -2.
func round(x float64) float64 {
	return math.Floor(x + 0.5)
}

func round2(x float64) float64 {
	return round(x*100) / 100
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
