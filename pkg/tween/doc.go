// Package tween synthesizes in-between SVG frames from two keyframes.
//
// # Correspondence
//
// The result of [Interpolate] starts as a structural clone of keyframe A. The
// engine walks that tree alongside A and B: a child carrying an id is matched
// to the element with the same id anywhere in B, a child without one to the
// child at the same index of the matched parent. Matched elements must have
// the same tag. Elements present in only one keyframe appear or disappear
// with no transition.
//
// # Fallback Policies
//
// Paths interpolate only when both sides have the same command letters and
// the same coordinate count per command, and every arc keeps its large-arc and
// sweep flags. Otherwise the path snaps: A verbatim while t < 0.5, B verbatim
// from t = 0.5 on. The switch point is the frame position t, not the eased
// weight. This discontinuity is deliberate.
//
// Polygon and polyline points interpolate only when the coordinate counts
// match; otherwise A's points are kept for the whole transition. The two
// policies are inconsistent with each other. Both are kept as they are and
// reported separately ([Snapped] vs [Frozen]) so callers can see which fired.
//
// # Transition Rules
//
// Asset-specific choreography lives in a declarative [Rule] table instead of
// the engine: crossfades between structurally different elements, rigid group
// translation, beams that grow from a fixed centre, z-order raises and
// opt-in fill blending. Each rule can be bound to one transition index.
//
// # Reports
//
// Every call returns a [Report] tallying what happened to each element. The
// tally is returned to the caller rather than accumulated globally.
package tween
