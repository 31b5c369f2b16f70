package tween

import (
	"github.com/beevik/etree"

	"github.com/matzehuels/svgtween/pkg/svg"
)

// Options configures a single [Interpolate] call.
type Options struct {
	// Transition is the 0-based index of the keyframe pair being
	// interpolated. Rules bound to another transition are ignored.
	Transition int

	// Rules is the transition rules table.
	Rules []Rule

	// Easing maps t to the interpolation weight. Nil is linear.
	Easing Easing
}

// numeric lists the plain coordinate attributes interpolated per tag.
var numeric = map[string][]string{
	"line":    {"x1", "y1", "x2", "y2"},
	"rect":    {"x", "y", "width", "height", "rx", "ry"},
	"circle":  {"cx", "cy", "r"},
	"ellipse": {"cx", "cy", "rx", "ry"},
}

type engine struct {
	a, b, out *svg.Document
	t, w      float64
	idsB      map[string]*etree.Element
	claimed   map[string]bool
	report    Report
}

// Interpolate builds the frame at t between keyframes a and b.
//
// Neither input is modified. Structural mismatches never fail: they fall back
// as described in the package documentation and are counted in the returned
// [Report].
func Interpolate(a, b *svg.Document, t float64, opts Options) (*svg.Document, Report) {
	e := &engine{
		a:       a,
		b:       b,
		out:     a.Clone(),
		t:       t,
		w:       opts.Easing.apply(t),
		idsB:    make(map[string]*etree.Element),
		claimed: make(map[string]bool),
	}
	svg.Walk(b.Root(), func(el *etree.Element) bool {
		if id := svg.ID(el); id != "" {
			if _, dup := e.idsB[id]; !dup {
				e.idsB[id] = el
			}
		}
		return true
	})

	var active, raises []Rule
	for _, r := range opts.Rules {
		if !r.AppliesTo(opts.Transition) {
			continue
		}
		if r.claims() {
			e.claimed[r.ID] = true
		}
		if r.Kind == KindCrossfade {
			e.claimed[r.Target] = true
		}
		if r.Kind == KindRaise {
			raises = append(raises, r)
			continue
		}
		active = append(active, r)
	}

	e.walk(a.Root(), b.Root(), e.out.Root())
	for _, r := range active {
		e.apply(r)
	}
	for _, r := range raises {
		e.apply(r)
	}
	return e.out, e.report
}

// walk interpolates ea/eb into eo, then descends into containers. eo is the
// element of the output clone at the same position as ea.
func (e *engine) walk(ea, eb, eo *etree.Element) {
	e.element(ea, eb, eo)
	if ea.Tag != "g" && ea.Tag != "svg" {
		return
	}

	ca, cb, co := ea.ChildElements(), eb.ChildElements(), eo.ChildElements()
	for i, childA := range ca {
		id := svg.ID(childA)
		if id != "" && e.claimed[id] {
			continue
		}
		var childB *etree.Element
		switch {
		case id != "":
			childB = e.idsB[id]
		case i < len(cb):
			childB = cb[i]
		}
		if childB == nil || childB.Tag != childA.Tag {
			e.report.Add(Skipped)
			continue
		}
		e.walk(childA, childB, co[i])
	}
}

func (e *engine) element(ea, eb, eo *etree.Element) {
	switch ea.Tag {
	case "path":
		e.geometry(ea, eb, eo, "d", func(a, b string) (string, Outcome) {
			return interpolatePath(a, b, e.t, e.w)
		})
	case "polygon", "polyline":
		e.geometry(ea, eb, eo, "points", func(a, b string) (string, Outcome) {
			return InterpolatePoints(a, b, e.w)
		})
	default:
		if keys, ok := numeric[ea.Tag]; ok {
			e.coordinates(ea, eb, eo, keys)
		}
	}
}

func (e *engine) geometry(ea, eb, eo *etree.Element, key string, fn func(a, b string) (string, Outcome)) {
	va, okA := svg.Attr(ea, key)
	vb, okB := svg.Attr(eb, key)
	if !okA || !okB {
		e.report.Add(Excluded)
		return
	}
	v, outcome := fn(va, vb)
	eo.CreateAttr(key, v)
	e.report.Add(outcome)
}

// coordinates interpolates each attribute in keys that both sides define as
// a number. Attributes present on one side only keep A's value.
func (e *engine) coordinates(ea, eb, eo *etree.Element, keys []string) {
	n := 0
	for _, k := range keys {
		va, okA := svg.Float(ea, k)
		vb, okB := svg.Float(eb, k)
		if !okA || !okB {
			continue
		}
		svg.SetFloat(eo, k, Lerp(va, vb, e.w))
		n++
	}
	if n == 0 {
		e.report.Add(Excluded)
		return
	}
	e.report.Add(Interpolated)
}
