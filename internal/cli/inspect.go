package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgtween/pkg/config"
	"github.com/matzehuels/svgtween/pkg/pipeline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var opts buildOpts
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect [config]",
		Short: "Interpolate keyframes and browse the frames without writing them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath(args))
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			return c.runInspect(cmd.Context(), cfg, opts.noCache, plain)
		},
	}

	cmd.Flags().IntVarP(&opts.frames, "frames", "f", 0, "in-between frames per transition")
	cmd.Flags().StringVar(&opts.easing, "easing", "", "easing curve")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&plain, "plain", false, "print a table instead of the interactive browser")

	cmd.ValidArgsFunction = completeConfigFiles

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, cfg *config.Config, noCache, plain bool) error {
	runner, err := c.newRunner(ctx, noCache, nil)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, cfg)
	if err != nil {
		return err
	}

	if plain {
		printInspect(result)
		return nil
	}

	p := tea.NewProgram(NewFrameListModel(result.Frames), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("frame browser: %w", err)
	}
	return nil
}

func printInspect(result *pipeline.Result) {
	fmt.Println(frameTable(result.Frames))
	printStats(result.Stats.Keyframes, result.Stats.Frames, result.CacheHit)
	r := result.Report
	printKeyValue("interpolated", fmt.Sprintf("%d", r.Interpolated))
	printKeyValue("snapped", fmt.Sprintf("%d", r.Snapped))
	printKeyValue("frozen", fmt.Sprintf("%d", r.Frozen))
	printKeyValue("excluded", fmt.Sprintf("%d", r.Excluded))
	printKeyValue("skipped", fmt.Sprintf("%d", r.Skipped))
	printKeyValue("rules", fmt.Sprintf("%d", r.RulesApplied))
}
