package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vivax3794/viv-script-blog/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove cached LLVM modules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache, err := driver.OpenArtifactCache(cacheApp)
		if err != nil {
			return err
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("failed to clear %s: %w", cache.Dir(), err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", cache.Dir())
		return nil
	},
}
