package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/svgtween/pkg/errors"
	"github.com/matzehuels/svgtween/pkg/lottie"
	"github.com/matzehuels/svgtween/pkg/timeline"
	"github.com/matzehuels/svgtween/pkg/tween"
)

// FramesDir is the subdirectory of the output directory holding frame files.
const FramesDir = "frames"

// FrameName returns the file name of frame i, e.g. frame_007.svg.
func FrameName(i int) string {
	return fmt.Sprintf("frame_%03d.svg", i)
}

// FramePath returns the path of frame i below the output directory dir.
func FramePath(dir string, i int) string {
	return filepath.Join(dir, FramesDir, FrameName(i))
}

type bundle struct {
	Frames []bundleFrame    `json:"frames"`
	Lottie *lottie.Envelope `json:"lottie"`
}

type bundleFrame struct {
	timeline.Slot
	Report tween.Report `json:"report"`
	SVG    string       `json:"svg"`
}

// WriteFrames serializes every frame into dir/frames and returns the written
// paths in frame order. Frame files left by an earlier build are removed
// first; other files in the directory are kept.
func WriteFrames(dir string, frames []timeline.Frame) ([]string, error) {
	framesDir := filepath.Join(dir, FramesDir)
	if err := os.MkdirAll(framesDir, 0o755); err != nil {
		return nil, errors.WrapFS(err, "create %s", framesDir)
	}
	if err := removeFrames(framesDir); err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(frames))
	for i, f := range frames {
		data, err := f.Doc.Bytes()
		if err != nil {
			return nil, err
		}
		path := FramePath(dir, i)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, errors.WrapFS(err, "write frame %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func removeFrames(framesDir string) error {
	stale, err := filepath.Glob(filepath.Join(framesDir, "frame_*.svg"))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "list frames in %s", framesDir)
	}
	for _, path := range stale {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.WrapFS(err, "remove stale frame %s", path)
		}
	}
	return nil
}

// WriteLottie encodes env as indented JSON and writes it to w.
func WriteLottie(env *lottie.Envelope, w io.Writer) error {
	data, err := env.Marshal()
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write lottie envelope")
	}
	return nil
}

// ExportLottie writes env to a file at path, creating parent directories.
// This is a convenience wrapper around [WriteLottie] for file-based output.
func ExportLottie(env *lottie.Envelope, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapFS(err, "create %s", filepath.Dir(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapFS(err, "create %s", path)
	}
	defer f.Close()
	return WriteLottie(env, f)
}

// WriteBundle encodes frames and env as a single JSON document.
// The output can be decoded with [ReadBundle].
func WriteBundle(frames []timeline.Frame, env *lottie.Envelope, w io.Writer) error {
	out := bundle{
		Frames: make([]bundleFrame, len(frames)),
		Lottie: env,
	}
	for i, f := range frames {
		data, err := f.Doc.Bytes()
		if err != nil {
			return err
		}
		out.Frames[i] = bundleFrame{Slot: f.Slot, Report: f.Report, SVG: string(data)}
	}

	if err := json.NewEncoder(w).Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode bundle")
	}
	return nil
}
