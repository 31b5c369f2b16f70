// Package pipeline provides the build pipeline shared by every svgtween command.
//
// # Architecture
//
// A build runs three stages, synchronously and in order:
//
//  1. Load: read and parse every keyframe (fatal on I/O or parse errors)
//  2. Sequence: clone keyframes and interpolate the in-between frames
//  3. Emit: build the Lottie envelope for the finished timeline
//
// The encoded result of a build is cached under a key derived from the
// keyframe bytes and every option that changes the output, so an unchanged
// build skips the sequence stage.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	written, err := pipeline.Write(cfg, result)
package pipeline

import (
	"time"

	"github.com/matzehuels/svgtween/pkg/lottie"
	"github.com/matzehuels/svgtween/pkg/timeline"
	"github.com/matzehuels/svgtween/pkg/tween"
)

// DefaultCanvasSize is used for the envelope when neither the config nor the
// first keyframe gives a canvas size.
const DefaultCanvasSize = 288.0

// Result contains the outputs of a pipeline run.
type Result struct {
	// Frames is the full timeline, keyframes included.
	Frames []timeline.Frame

	// Envelope is the Lottie envelope and Lottie its encoded form.
	Envelope *lottie.Envelope
	Lottie   []byte

	// Report is the merged tally of every interpolated frame.
	Report tween.Report

	// InputHash identifies the keyframe bytes the run was built from.
	InputHash string

	// CacheHit is true when the frames came from the artifact cache.
	CacheHit bool

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Keyframes           int
	FramesPerTransition int
	Frames              int
	FPS                 float64
	Width, Height       float64

	LoadTime     time.Duration
	SequenceTime time.Duration
	EmitTime     time.Duration
}

// Duration returns the animation length in seconds.
func (s Stats) Duration() float64 {
	if s.FPS <= 0 {
		return 0
	}
	return float64(s.Frames) / s.FPS
}
