package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vivax3794/viv-script-blog/internal/prof"
)

var profSession *prof.Session

// setupProfiling starts the profilers named by the persistent flags.
func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var cfg prof.Config
	var err error
	if cfg.CPUPath, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.MemPath, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.TracePath, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return nil
	}
	profSession, err = prof.Start(cfg)
	return err
}

func stopProfiling() error {
	s := profSession
	profSession = nil
	return s.Stop()
}
