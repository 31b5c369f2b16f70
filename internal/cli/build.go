package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/svgtween/pkg/config"
	"github.com/matzehuels/svgtween/pkg/io"
	"github.com/matzehuels/svgtween/pkg/pipeline"
)

// buildOpts holds the command-line flags for the build command.
// Zero values leave the config file's setting untouched.
type buildOpts struct {
	frames  int     // in-between frames per transition
	fps     float64 // playback frame rate
	out     string  // output directory
	name    string  // Lottie file name
	easing  string  // easing curve applied to the interpolation weight
	noCache bool    // bypass the artifact cache
}

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build [config]",
		Short: "Interpolate keyframes and write SVG frames plus a Lottie envelope",
		Long: `Build reads the keyframes listed in the config file (svgtween.toml by default),
interpolates the in-between frames and writes:

  <output_dir>/frames/frame_000.svg ...   every frame, keyframes included
  <output_dir>/<output_name>              the Lottie JSON envelope

The Lottie file carries timing and canvas metadata only.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath(args))
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			return c.runBuild(cmd.Context(), cfg, opts.noCache)
		},
	}

	cmd.Flags().IntVarP(&opts.frames, "frames", "f", 0, "in-between frames per transition (default from config, else 10)")
	cmd.Flags().Float64Var(&opts.fps, "fps", 0, "frame rate (default from config, else 30)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output directory")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Lottie output file name")
	cmd.Flags().StringVar(&opts.easing, "easing", "", "easing: linear, in-quad, out-quad, in-out-quad, in-cubic, out-cubic, in-out-cubic, in-out-sine")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	cmd.ValidArgsFunction = completeConfigFiles

	return cmd
}

// apply copies every flag the user set onto cfg.
func (o buildOpts) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("frames") {
		cfg.FramesPerTransition = o.frames
	}
	if flags.Changed("fps") {
		cfg.FPS = o.fps
	}
	if flags.Changed("out") {
		cfg.OutputDir = o.out
	}
	if flags.Changed("name") {
		cfg.OutputName = o.name
		cfg.Name = ""
	}
	if flags.Changed("easing") {
		cfg.Easing = o.easing
	}
}

// runBuild executes the pipeline and writes its artifacts.
func (c *CLI) runBuild(ctx context.Context, cfg *config.Config, noCache bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var spinner *Spinner
	if !c.verbose() {
		spinner = newSpinner(ctx, "Loading keyframes...")
		spinner.Start()
		defer spinner.Stop()
	}

	runner, err := c.newRunner(ctx, noCache, spinner)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, cfg)
	if err != nil {
		if spinner != nil {
			spinner.StopWithError("Build failed")
		}
		return err
	}

	written, err := pipeline.Write(cfg, result)
	if err != nil {
		if spinner != nil {
			spinner.StopWithError("Writing frames failed")
		}
		return err
	}
	if spinner != nil {
		spinner.Stop()
	}
	prog.done("Built %d frames", result.Stats.Frames)

	printBuildSummary(result, written)
	return nil
}

// printBuildSummary prints what a build produced.
func printBuildSummary(result *pipeline.Result, written *pipeline.Written) {
	s := result.Stats
	printSuccess("Built %d frames from %d keyframes", s.Frames, s.Keyframes)
	printKeyValue("transition", fmt.Sprintf("%d frames", s.FramesPerTransition))
	printKeyValue("frame rate", fmt.Sprintf("%g fps", s.FPS))
	printKeyValue("duration", fmt.Sprintf("%.2fs", s.Duration()))
	printKeyValue("canvas", fmt.Sprintf("%gx%g", s.Width, s.Height))
	printStats(s.Keyframes, s.Frames, result.CacheHit)

	printNewline()
	printFile(fmt.Sprintf("%s (%d files)", filepath.Join(written.Dir, io.FramesDir), len(written.Frames)))
	printFile(written.Lottie)

	if r := result.Report; r.Degraded() {
		printNewline()
		printWarning("%d snapped, %d frozen, %d excluded", r.Snapped, r.Frozen, r.Excluded)
		printDetail("Snapped paths switch to the next keyframe halfway through a transition.")
		printDetail("Frozen points keep the earlier keyframe's coordinates.")
	}

	printNewline()
	printInfo("The Lottie file holds timing and canvas metadata only; the artwork lives in the SVG frames.")
	printNextStep("Browse frames", appName+" inspect")
}
