package tween

import "github.com/matzehuels/svgtween/pkg/svg"

// InterpolatePath interpolates two path data strings at t.
//
// When the paths are not compatible (different command letters, different
// coordinate counts for any command, or different arc flags) the result is a
// hard switch: a verbatim for t < 0.5 and b verbatim for t >= 0.5. When either
// side is empty or cannot be parsed, a is returned verbatim and the outcome is
// [Excluded].
func InterpolatePath(a, b string, t float64) (string, Outcome) {
	return interpolatePath(a, b, t, t)
}

// interpolatePath snaps on the frame position t and blends coordinates by
// the eased weight w.
func interpolatePath(a, b string, t, w float64) (string, Outcome) {
	ca := svg.ParsePath(a)
	cb := svg.ParsePath(b)
	if len(ca) == 0 || len(cb) == 0 {
		return a, Excluded
	}
	if !compatible(ca, cb) {
		if t < 0.5 {
			return a, Snapped
		}
		return b, Snapped
	}

	out := make([]svg.Command, len(ca))
	for i := range ca {
		out[i] = svg.Command{
			Letter: ca[i].Letter,
			Coords: LerpSlice(ca[i].Coords, cb[i].Coords, w),
		}
	}
	return svg.FormatPath(out), Interpolated
}

func compatible(a, b []svg.Command) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Letter != b[i].Letter || len(a[i].Coords) != len(b[i].Coords) {
			return false
		}
		if a[i].IsArc() {
			largeA, sweepA := a[i].ArcFlags()
			largeB, sweepB := b[i].ArcFlags()
			if largeA != largeB || sweepA != sweepB {
				return false
			}
		}
	}
	return true
}

// InterpolatePoints interpolates two points lists at t. Lists of different
// lengths keep a unchanged ([Frozen]); unparseable lists are [Excluded].
func InterpolatePoints(a, b string, t float64) (string, Outcome) {
	pa := svg.ParsePoints(a)
	pb := svg.ParsePoints(b)
	if len(pa) == 0 || len(pb) == 0 {
		return a, Excluded
	}
	if len(pa) != len(pb) {
		return a, Frozen
	}
	return svg.FormatPoints(LerpSlice(pa, pb, t)), Interpolated
}
