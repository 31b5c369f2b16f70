// Package timeline sequences keyframes into the full list of animation frames.
//
// For K keyframes and F in-between frames per transition the timeline has
// (K-1)*F + K frames. Keyframe k is emitted exactly, followed by the F
// interpolated frames between keyframe k and k+1 at t = i/(F+1) for
// i = 1..F. The last keyframe closes the sequence.
//
//	slots := timeline.Plan(3, 10) // 23 slots
//	frames, err := timeline.Build(ctx, keyframes, timeline.Options{
//	    FramesPerTransition: 10,
//	})
package timeline

import (
	"context"

	"github.com/matzehuels/svgtween/pkg/errors"
	"github.com/matzehuels/svgtween/pkg/svg"
	"github.com/matzehuels/svgtween/pkg/tween"
)

// Slot positions one frame in the timeline.
type Slot struct {
	// Index is the 0-based frame number.
	Index int `json:"index"`
	// Transition is the keyframe pair the frame belongs to. Keyframe k has
	// transition k, except the final keyframe which closes transition K-2.
	Transition int `json:"transition"`
	// Step is i in t = i/(F+1). It is 0 for keyframes.
	Step int `json:"step"`
	// T is the position within the transition, in [0,1].
	T float64 `json:"t"`
	// Keyframe marks frames copied from a keyframe rather than interpolated.
	Keyframe bool `json:"keyframe"`
}

// Frame is one generated frame.
type Frame struct {
	Slot
	Doc    *svg.Document
	Report tween.Report
}

// Options configures Build.
type Options struct {
	// FramesPerTransition is F, the number of in-between frames per pair.
	FramesPerTransition int
	Rules               []tween.Rule
	Easing              tween.Easing
}

// Count returns the total frame count (k-1)*f + k. It is 0 when k < 1.
func Count(k, f int) int {
	if k < 1 {
		return 0
	}
	return (k-1)*f + k
}

// Plan lays out the frame slots for k keyframes and f in-between frames.
func Plan(k, f int) []Slot {
	slots := make([]Slot, 0, Count(k, f))
	for kf := 0; kf < k; kf++ {
		if kf == k-1 {
			slot := Slot{Index: len(slots), Transition: kf - 1, T: 1, Keyframe: true}
			if k == 1 {
				slot.Transition, slot.T = 0, 0
			}
			slots = append(slots, slot)
			break
		}
		slots = append(slots, Slot{Index: len(slots), Transition: kf, Keyframe: true})
		for i := 1; i <= f; i++ {
			slots = append(slots, Slot{
				Index:      len(slots),
				Transition: kf,
				Step:       i,
				T:          float64(i) / float64(f+1),
			})
		}
	}
	return slots
}

// Build generates every frame for keyframes. Keyframes are cloned, not
// interpolated, so they appear exactly as drawn. The context is checked
// between transitions.
func Build(ctx context.Context, keyframes []*svg.Document, opts Options) ([]Frame, error) {
	if len(keyframes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "at least one keyframe is required")
	}
	if opts.FramesPerTransition < 1 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "frames per transition must be >= 1, got %d", opts.FramesPerTransition)
	}

	slots := Plan(len(keyframes), opts.FramesPerTransition)
	frames := make([]Frame, 0, len(slots))
	for _, s := range slots {
		if s.Keyframe && s.T == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if s.Keyframe {
			kf := s.Transition
			if s.T == 1 {
				kf++
			}
			frames = append(frames, Frame{Slot: s, Doc: keyframes[kf].Clone()})
			continue
		}
		doc, report := tween.Interpolate(keyframes[s.Transition], keyframes[s.Transition+1], s.T, tween.Options{
			Transition: s.Transition,
			Rules:      opts.Rules,
			Easing:     opts.Easing,
		})
		frames = append(frames, Frame{Slot: s, Doc: doc, Report: report})
	}
	return frames, nil
}

// Summarize merges the reports of all frames.
func Summarize(frames []Frame) tween.Report {
	var total tween.Report
	for _, f := range frames {
		total = total.Merge(f.Report)
	}
	return total
}
