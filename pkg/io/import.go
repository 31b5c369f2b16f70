package io

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/svgtween/pkg/errors"
	"github.com/matzehuels/svgtween/pkg/lottie"
	"github.com/matzehuels/svgtween/pkg/svg"
	"github.com/matzehuels/svgtween/pkg/timeline"
)

// ReadBundle decodes a bundle written by [WriteBundle], re-parsing every
// frame's SVG.
//
// The bundle must hold at least one frame and an envelope; anything else is
// reported as INVALID_INPUT so callers can treat the bundle as stale.
func ReadBundle(r io.Reader) ([]timeline.Frame, *lottie.Envelope, error) {
	var in bundle
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode bundle")
	}
	if len(in.Frames) == 0 || in.Lottie == nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "bundle is incomplete")
	}

	frames := make([]timeline.Frame, len(in.Frames))
	for i, f := range in.Frames {
		doc, err := svg.Parse(FrameName(i), []byte(f.SVG))
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bundle frame %d", i)
		}
		frames[i] = timeline.Frame{Slot: f.Slot, Doc: doc, Report: f.Report}
	}
	return frames, in.Lottie, nil
}
