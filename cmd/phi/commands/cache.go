package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/phi/cache"
	"github.com/teranos/phi/logger"
)

// CacheCmd groups result cache maintenance
var CacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the result cache",
}

var cacheFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Remove every cached result",
	RunE:  runCacheFlush,
}

func init() {
	CacheCmd.AddCommand(cacheFlushCmd)
}

func runCacheFlush(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Cache.Enabled {
		fmt.Fprintln(cmd.OutOrStdout(), "Cache is disabled; nothing to flush")
		return nil
	}

	c, closeCache, err := cache.Open(cfg.Cache, logger.ComponentLogger("cache"))
	if err != nil {
		return err
	}
	defer closeCache()

	if err := c.Flush(cmd.Context()); err != nil {
		return fmt.Errorf("failed to flush cache: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Flushed %s cache\n", cfg.Cache.Backend)
	return nil
}
