// Package io writes build artifacts to disk and encodes frame bundles.
//
// # Layout
//
// A build writes into one output directory:
//
//	animations/
//	  hero.json              Lottie envelope (see package lottie)
//	  frames/
//	    frame_000.svg        keyframe 1
//	    frame_001.svg        first interpolated frame
//	    ...
//
// Frame files are numbered from 000 in timeline order. Directories are
// created as needed and existing files are overwritten.
//
// # Bundles
//
// [WriteBundle] and [ReadBundle] encode a whole build (every frame's slot,
// report and serialized SVG plus the envelope) as a single JSON document.
// The pipeline stores bundles in the artifact cache so that an unchanged
// build can skip interpolation entirely.
package io
