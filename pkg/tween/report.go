package tween

import "fmt"

// Outcome classifies what the engine did with one element.
type Outcome int

const (
	// Interpolated elements were blended between A and B.
	Interpolated Outcome = iota
	// Snapped paths had incompatible commands and switched at t = 0.5.
	Snapped
	// Frozen points lists had different lengths and kept A's coordinates.
	Frozen
	// Excluded elements had empty or unparseable geometry on one side.
	Excluded
	// Skipped elements had no counterpart in B, or one of a different kind.
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Interpolated:
		return "interpolated"
	case Snapped:
		return "snapped"
	case Frozen:
		return "frozen"
	case Excluded:
		return "excluded"
	case Skipped:
		return "skipped"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Report tallies outcomes for one frame (or, merged, for a whole run).
type Report struct {
	Interpolated int `json:"interpolated"`
	Snapped      int `json:"snapped"`
	Frozen       int `json:"frozen"`
	Excluded     int `json:"excluded"`
	Skipped      int `json:"skipped"`
	RulesApplied int `json:"rules_applied"`
}

// Add counts one outcome.
func (r *Report) Add(o Outcome) {
	switch o {
	case Interpolated:
		r.Interpolated++
	case Snapped:
		r.Snapped++
	case Frozen:
		r.Frozen++
	case Excluded:
		r.Excluded++
	case Skipped:
		r.Skipped++
	}
}

// Merge returns the sum of r and o.
func (r Report) Merge(o Report) Report {
	return Report{
		Interpolated: r.Interpolated + o.Interpolated,
		Snapped:      r.Snapped + o.Snapped,
		Frozen:       r.Frozen + o.Frozen,
		Excluded:     r.Excluded + o.Excluded,
		Skipped:      r.Skipped + o.Skipped,
		RulesApplied: r.RulesApplied + o.RulesApplied,
	}
}

// Degraded reports whether any element fell back instead of interpolating.
func (r Report) Degraded() bool {
	return r.Snapped > 0 || r.Frozen > 0 || r.Excluded > 0
}
