package tween

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/svgtween/pkg/errors"
	"github.com/matzehuels/svgtween/pkg/svg"
)

// Kind names a transition rule.
type Kind string

// Rule kinds.
const (
	// KindCrossfade fades ID out while sliding it from From towards To, and
	// fades Target (cloned from keyframe B) in right after it.
	KindCrossfade Kind = "crossfade"
	// KindGroupTranslate moves ID as a rigid unit by (To - From) * t.
	KindGroupTranslate Kind = "group-translate"
	// KindBeamGrow clones ID from keyframe B and grows every line inside it
	// from Center to its final coordinates.
	KindBeamGrow Kind = "beam-grow"
	// KindRaise moves the children of ID that carry Class to the end of ID,
	// drawing them on top.
	KindRaise Kind = "raise"
	// KindBlendFill blends hex fill colours of ID and its descendants in
	// CIE-L*a*b* space.
	KindBlendFill Kind = "blend-fill"
)

// Point is an anchor coordinate in canvas space.
type Point struct {
	X, Y float64
}

// Rule is one entry of the transition rules table.
type Rule struct {
	Kind Kind
	// ID is the element the rule acts on.
	ID string
	// Target is the keyframe B element a crossfade fades in.
	Target string
	// From and To anchor crossfade and group-translate motion.
	From, To Point
	// Center is where beam-grow lines start.
	Center Point
	// Before is the sibling a newly inserted beam is placed in front of.
	Before string
	// Class selects the children a raise rule moves.
	Class string
	// Transition restricts the rule to one keyframe pair (0-based). Nil
	// applies it to every transition.
	Transition *int
}

// Validate checks that the rule carries the fields its kind needs.
func (r Rule) Validate() error {
	if r.ID == "" {
		return errors.New(errors.ErrCodeInvalidRule, "%s rule: id is required", r.Kind)
	}
	if r.Transition != nil && *r.Transition < 0 {
		return errors.New(errors.ErrCodeInvalidRule, "%s rule %q: transition must be >= 0", r.Kind, r.ID)
	}
	switch r.Kind {
	case KindCrossfade:
		if r.Target == "" {
			return errors.New(errors.ErrCodeInvalidRule, "crossfade rule %q: target is required", r.ID)
		}
	case KindRaise:
		if r.Class == "" {
			return errors.New(errors.ErrCodeInvalidRule, "raise rule %q: class is required", r.ID)
		}
	case KindGroupTranslate, KindBeamGrow, KindBlendFill:
	default:
		return errors.New(errors.ErrCodeInvalidRule, "unknown rule kind %q", r.Kind)
	}
	return nil
}

// AppliesTo reports whether the rule is active for the given transition.
func (r Rule) AppliesTo(transition int) bool {
	return r.Transition == nil || *r.Transition == transition
}

// claims reports whether the rule takes over ID from the structural walk.
func (r Rule) claims() bool {
	switch r.Kind {
	case KindCrossfade, KindGroupTranslate, KindBeamGrow:
		return true
	}
	return false
}

// apply runs a non-raise rule against the frame under construction.
func (e *engine) apply(r Rule) {
	switch r.Kind {
	case KindCrossfade:
		e.crossfade(r)
	case KindGroupTranslate:
		e.groupTranslate(r)
	case KindBeamGrow:
		e.beamGrow(r)
	case KindBlendFill:
		e.blendFill(r)
	case KindRaise:
		e.raise(r)
	}
}

func (e *engine) crossfade(r Rule) {
	src := e.out.ElementByID(r.ID)
	target := e.b.ElementByID(r.Target)
	if src == nil || target == nil {
		e.report.Add(Skipped)
		return
	}

	src.CreateAttr("opacity", svg.FormatNumber(1-e.w))
	translate(src, r.From, r.To, e.w)

	if existing := e.out.ElementByID(r.Target); existing != nil {
		existing.CreateAttr("opacity", svg.FormatNumber(e.w))
	} else {
		clone := target.Copy()
		clone.CreateAttr("opacity", svg.FormatNumber(e.w))
		svg.InsertAfter(src, clone)
	}
	e.report.RulesApplied++
}

func (e *engine) groupTranslate(r Rule) {
	el := e.out.ElementByID(r.ID)
	if el == nil {
		e.report.Add(Skipped)
		return
	}
	translate(el, r.From, r.To, e.w)
	e.report.RulesApplied++
}

func (e *engine) beamGrow(r Rule) {
	src := e.b.ElementByID(r.ID)
	if src == nil {
		e.report.Add(Skipped)
		return
	}
	beam := src.Copy()
	lines := svg.Descendants(beam, "line")
	if beam.Tag == "line" {
		lines = append(lines, beam)
	}
	for _, line := range lines {
		for _, c := range [...]struct {
			key    string
			center float64
		}{
			{"x1", r.Center.X}, {"y1", r.Center.Y},
			{"x2", r.Center.X}, {"y2", r.Center.Y},
		} {
			if v, ok := svg.Float(line, c.key); ok {
				svg.SetFloat(line, c.key, Lerp(c.center, v, e.w))
			}
		}
	}

	switch existing, before := e.out.ElementByID(r.ID), e.out.ElementByID(r.Before); {
	case existing != nil && svg.ReplaceElement(existing, beam):
	case before != nil && svg.InsertBefore(before, beam):
	default:
		e.out.Root().AddChild(beam)
	}
	e.report.RulesApplied++
}

func (e *engine) raise(r Rule) {
	el := e.out.ElementByID(r.ID)
	if el == nil {
		e.report.Add(Skipped)
		return
	}
	var raised []*etree.Element
	for _, c := range el.ChildElements() {
		if c.SelectAttrValue("class", "") == r.Class {
			raised = append(raised, c)
		}
	}
	for _, c := range raised {
		el.RemoveChild(c)
		el.AddChild(c)
	}
	e.report.RulesApplied++
}

func (e *engine) blendFill(r Rule) {
	ea, eb, eo := e.a.ElementByID(r.ID), e.b.ElementByID(r.ID), e.out.ElementByID(r.ID)
	if ea == nil || eb == nil || eo == nil {
		e.report.Add(Skipped)
		return
	}
	blendFills(ea, eb, eo, e.w)
	e.report.RulesApplied++
}

// blendFills walks three parallel trees and blends every fill both keyframes
// define as hex colours. Anything else keeps A's fill.
func blendFills(a, b, out *etree.Element, t float64) {
	if fa, ok := svg.Attr(a, "fill"); ok {
		if fb, ok := svg.Attr(b, "fill"); ok {
			ca, errA := colorful.Hex(fa)
			cb, errB := colorful.Hex(fb)
			if errA == nil && errB == nil {
				out.CreateAttr("fill", ca.BlendLab(cb, t).Clamped().Hex())
			}
		}
	}
	ca, cb, co := a.ChildElements(), b.ChildElements(), out.ChildElements()
	for i := range ca {
		if i >= len(cb) || i >= len(co) || ca[i].Tag != cb[i].Tag {
			continue
		}
		blendFills(ca[i], cb[i], co[i], t)
	}
}

// translate prefixes el's transform with translate((to-from)*t), keeping any
// transform the element already had.
func translate(el *etree.Element, from, to Point, t float64) {
	dx := (to.X - from.X) * t
	dy := (to.Y - from.Y) * t
	tr := fmt.Sprintf("translate(%s, %s)", svg.FormatNumber(dx), svg.FormatNumber(dy))
	if base, ok := svg.Attr(el, "transform"); ok {
		tr += " " + base
	}
	el.CreateAttr("transform", tr)
}

// ValidateRules validates every rule in order and returns the first error.
func ValidateRules(rules []Rule) error {
	for i, r := range rules {
		if err := r.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRule, err, "rule %d", i)
		}
	}
	return nil
}
