package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/svgtween/pkg/config"
	"github.com/matzehuels/svgtween/pkg/pipeline"
	"github.com/matzehuels/svgtween/pkg/preview"
)

const defaultServeAddr = "127.0.0.1:8723"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts buildOpts
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [config]",
		Short: "Build once and preview the frames in a browser",
		Long: `Serve builds the animation and serves a flipbook of its frames.

POST /rebuild re-reads the config and keyframes, so edits to the SVG files
show up without restarting. Nothing is written to the output directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath(args)
			build := func(ctx context.Context) (*pipeline.Result, error) {
				cfg, err := config.Load(path)
				if err != nil {
					return nil, err
				}
				opts.apply(cmd, cfg)
				runner, err := c.newRunner(ctx, opts.noCache, nil)
				if err != nil {
					return nil, err
				}
				defer runner.Close()
				return runner.Execute(ctx, cfg)
			}
			return c.runServe(cmd.Context(), addr, build)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address")
	cmd.Flags().IntVarP(&opts.frames, "frames", "f", 0, "in-between frames per transition")
	cmd.Flags().Float64Var(&opts.fps, "fps", 0, "frame rate")
	cmd.Flags().StringVar(&opts.easing, "easing", "", "easing curve")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	cmd.ValidArgsFunction = completeConfigFiles

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, build preview.BuildFunc) error {
	logger := loggerFromContext(ctx)
	srv := preview.New(build, logger)

	prog := newProgress(logger)
	result, err := srv.Rebuild(ctx)
	if err != nil {
		return err
	}
	prog.done("Built %d frames", len(result.Frames))

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- httpSrv.ListenAndServe()
	}()

	printSuccess("Serving %d frames", len(result.Frames))
	printFile("http://" + addr)
	printNextStep("Rebuild after editing keyframes", "curl -X POST http://"+addr+"/rebuild")

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	}
}
