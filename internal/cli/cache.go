package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/modorder/internal/config"
	"github.com/matzehuels/modorder/pkg/cache"
	"github.com/matzehuels/modorder/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the resolution cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached resolutions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cfg().Cache
			if cfg.Backend == config.CacheRedis {
				return errors.New(errors.ErrCodeUnsupported, "cache clear only supports the file backend; redis entries expire after %s", cfg.TTL)
			}

			fc, err := cache.NewFileCache(cfg.Dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			count, err := fc.Clear()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if count == 0 {
				printInfo(out, "Cache is empty")
				return nil
			}
			printSuccess(out, "Cleared %d cached entries", count)
			printDetail(out, "Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), c.cfg().Cache.Dir)
			return nil
		},
	}
}
