package tween

import (
	"sort"
	"strings"

	"github.com/fogleman/ease"

	"github.com/matzehuels/svgtween/pkg/errors"
)

// Easing maps linear progress t in [0,1] to an interpolation weight.
type Easing func(t float64) float64

// EasingLinear is the default easing name.
const EasingLinear = "linear"

var easings = map[string]Easing{
	EasingLinear:   ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-out-sine":  ease.InOutSine,
}

// ParseEasing looks up an easing by name. The empty name is linear.
func ParseEasing(name string) (Easing, error) {
	if name == "" {
		name = EasingLinear
	}
	e, ok := easings[strings.ToLower(name)]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown easing %q (must be one of: %s)", name, strings.Join(EasingNames(), ", "))
	}
	return e, nil
}

// EasingNames returns the supported easing names, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (e Easing) apply(t float64) float64 {
	if e == nil || t <= 0 || t >= 1 {
		return t
	}
	return e(t)
}
