package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/svgtween/pkg/buildinfo"
	"github.com/matzehuels/svgtween/pkg/cache"
	"github.com/matzehuels/svgtween/pkg/observability"
	"github.com/matzehuels/svgtween/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "svgtween"

	// defaultConfigFile is the config used when none is given.
	defaultConfigFile = "svgtween.toml"

	// envRedisURL selects the shared Redis artifact cache when set.
	envRedisURL = "SVGTWEEN_REDIS_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// verbose reports whether debug logging is enabled.
func (c *CLI) verbose() bool {
	return c.Logger.GetLevel() <= log.DebugLevel
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "svgtween interpolates SVG keyframes into animation frames",
		Long: `svgtween reads an ordered list of hand-drawn SVG keyframes, synthesizes evenly
spaced in-between frames by interpolating the coordinates of corresponding
elements, and writes every frame as an SVG file next to a Lottie JSON envelope.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. In verbose mode stage
// events are logged; otherwise they drive the spinner, when one is given.
func (c *CLI) newRunner(ctx context.Context, noCache bool, spinner *Spinner) (*pipeline.Runner, error) {
	cache, err := newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	hooks := observability.Hooks{}
	if c.verbose() {
		lh := observability.NewLogHooks(c.Logger)
		hooks = observability.Hooks{Pipeline: lh, Cache: lh}
	} else if spinner != nil {
		hooks.Pipeline = spinner.Hooks()
	}
	return pipeline.NewRunner(cache, nil, c.Logger).WithHooks(hooks), nil
}

// newCache picks the artifact cache: none, Redis when SVGTWEEN_REDIS_URL is
// set, else files below the XDG cache directory.
func newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if url := os.Getenv(envRedisURL); url != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{URL: url})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/svgtween/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configPath returns the config file named by args, or the default.
func configPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultConfigFile
}
