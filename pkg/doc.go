// Package pkg provides the core libraries for svgtween keyframe interpolation.
//
// # Overview
//
// svgtween turns a handful of hand-drawn SVG keyframes into a smooth frame
// sequence by interpolating the coordinates of corresponding elements. The
// pkg directory is organized into three areas:
//
//  1. Domain logic: [svg], [tween], [timeline], [lottie]
//  2. Infrastructure: [cache], [config], [io], [observability], [errors]
//  3. Orchestration: [pipeline] (load → sequence → emit)
//
// # Architecture
//
// The data flow through a build:
//
//	svgtween.toml
//	     ↓
//	[config] package (keyframe paths, frame counts, rules)
//	     ↓
//	[svg] package (parse keyframes into element trees)
//	     ↓
//	[timeline] package (plan slots, clone keyframes)
//	     ↓
//	[tween] package (interpolate paths, points, lines, shapes; apply rules)
//	     ↓
//	[io] package (frame_NNN.svg files) + [lottie] package (JSON envelope)
//
// # Quick Start
//
//	a, _ := svg.Load("svg/one.svg")
//	b, _ := svg.Load("svg/two.svg")
//
//	frame, report := tween.Interpolate(a, b, 0.5, tween.Options{})
//	data, _ := frame.Bytes()
//	fmt.Println(report.Snapped, len(data))
//
// Or run a whole build:
//
//	cfg, _ := config.Load("svgtween.toml")
//	result, _ := pipeline.NewRunner(nil, nil, logger).Execute(ctx, cfg)
//	pipeline.Write(cfg, result)
//
// # Limitations
//
// The Lottie file carries timing and canvas metadata only. The artwork of
// every frame lives in the SVG files written next to it.
//
// [svg]: github.com/matzehuels/svgtween/pkg/svg
// [tween]: github.com/matzehuels/svgtween/pkg/tween
// [timeline]: github.com/matzehuels/svgtween/pkg/timeline
// [lottie]: github.com/matzehuels/svgtween/pkg/lottie
// [cache]: github.com/matzehuels/svgtween/pkg/cache
// [config]: github.com/matzehuels/svgtween/pkg/config
// [io]: github.com/matzehuels/svgtween/pkg/io
// [observability]: github.com/matzehuels/svgtween/pkg/observability
// [errors]: github.com/matzehuels/svgtween/pkg/errors
// [pipeline]: github.com/matzehuels/svgtween/pkg/pipeline
package pkg
