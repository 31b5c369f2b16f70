package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/svgtween/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
		Long: `Builds are cached by the hash of their keyframes and options. The cache lives
below $XDG_CACHE_HOME/svgtween, or in Redis when ` + envRedisURL + ` is set.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached build artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return clearCache(cmd.Context())
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// clearCache empties whichever cache builds would use.
func clearCache(ctx context.Context) error {
	store, err := newCache(ctx, false)
	if err != nil {
		return err
	}
	defer store.Close()

	clearer, ok := store.(cache.Clearer)
	if !ok {
		return fmt.Errorf("cache %T cannot be cleared", store)
	}
	count, err := clearer.Clear(ctx)
	if err != nil {
		return err
	}

	if count == 0 {
		printInfo("Cache is empty")
	} else {
		printSuccess("Cleared %d cached builds", count)
	}
	switch s := store.(type) {
	case *cache.FileCache:
		printDetail("Directory: %s", s.Dir())
	case *cache.RedisCache:
		printDetail("Redis prefix: %s", s.Prefix())
	}
	return nil
}
