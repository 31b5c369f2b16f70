package tween

// Lerp interpolates linearly between a and b: a + (b - a) * t.
// It is evaluated as (1-t)*a + t*b, which is exact at both t = 0 and t = 1.
func Lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// LerpSlice interpolates a and b element-wise. It returns nil when the
// lengths differ.
func LerpSlice(a, b []float64, t float64) []float64 {
	if len(a) != len(b) {
		return nil
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = Lerp(a[i], b[i], t)
	}
	return out
}
