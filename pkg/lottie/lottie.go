// Package lottie builds the Lottie JSON envelope written next to the frames.
//
// The envelope carries timing and canvas metadata only: version, frame rate,
// frame range, canvas size and a single precomposition layer with a static
// transform anchored at the canvas centre. It holds no per-frame vector data,
// so it is not a faithful re-encoding of the frames and general Lottie
// players will render an empty canvas. The SVG frames are the real output.
package lottie

import (
	"encoding/json"

	"github.com/matzehuels/svgtween/pkg/errors"
)

// Version is the Lottie schema version written to every envelope.
const Version = "5.7.4"

// LayerName is the name of the single layer.
const LayerName = "SVG Animation"

// Envelope is the top-level Lottie document.
type Envelope struct {
	Version   string  `json:"v"`
	FrameRate float64 `json:"fr"`
	InPoint   int     `json:"ip"`
	OutPoint  int     `json:"op"`
	Width     float64 `json:"w"`
	Height    float64 `json:"h"`
	Name      string  `json:"nm"`
	ThreeD    int     `json:"ddd"`
	Assets    []any   `json:"assets"`
	Layers    []Layer `json:"layers"`
	Markers   []any   `json:"markers"`
}

// Layer is a Lottie layer.
type Layer struct {
	ThreeD     int       `json:"ddd"`
	Index      int       `json:"ind"`
	Type       int       `json:"ty"`
	Name       string    `json:"nm"`
	Stretch    float64   `json:"sr"`
	Transform  Transform `json:"ks"`
	AutoOrient int       `json:"ao"`
	InPoint    int       `json:"ip"`
	OutPoint   int       `json:"op"`
	StartTime  int       `json:"st"`
	BlendMode  int       `json:"bm"`
}

// Transform is a layer's static transform.
type Transform struct {
	Opacity  Value `json:"o"`
	Rotation Value `json:"r"`
	Position Value `json:"p"`
	Anchor   Value `json:"a"`
	Scale    Value `json:"s"`
}

// Value is a non-animated property: a is 0 and k holds the value.
type Value struct {
	Animated int `json:"a"`
	K        any `json:"k"`
}

func static(k any) Value { return Value{K: k} }

// LayerTypePrecomp is the Lottie layer type of a precomposition.
const LayerTypePrecomp = 0

// New builds the envelope for an animation of frames frames at fps over a
// w x h canvas.
func New(name string, frames int, fps, w, h float64) *Envelope {
	center := []float64{w / 2, h / 2, 0}
	return &Envelope{
		Version:   Version,
		FrameRate: fps,
		OutPoint:  frames,
		Width:     w,
		Height:    h,
		Name:      name,
		Assets:    []any{},
		Layers: []Layer{{
			Index:   1,
			Type:    LayerTypePrecomp,
			Name:    LayerName,
			Stretch: 1,
			Transform: Transform{
				Opacity:  static(100),
				Rotation: static(0),
				Position: static(center),
				Anchor:   static(center),
				Scale:    static([]float64{100, 100, 100}),
			},
			OutPoint: frames,
		}},
		Markers: []any{},
	}
}

// Frames returns the number of frames covered by the envelope.
func (e *Envelope) Frames() int {
	return e.OutPoint - e.InPoint
}

// Duration returns the animation length in seconds.
func (e *Envelope) Duration() float64 {
	if e.FrameRate <= 0 {
		return 0
	}
	return float64(e.Frames()) / e.FrameRate
}

// Marshal encodes the envelope as indented JSON.
func (e *Envelope) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode lottie envelope")
	}
	return data, nil
}

// Unmarshal decodes an envelope.
func Unmarshal(data []byte) (*Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode lottie envelope")
	}
	return &e, nil
}
