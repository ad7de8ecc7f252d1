package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"efguard/internal/prof"
)

// startProfiling starts the profilers requested by the persistent flags.
// The returned stop function is safe to call more than once.
func startProfiling(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	var paths prof.Paths
	var err error
	if paths.CPU, err = root.PersistentFlags().GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if paths.Heap, err = root.PersistentFlags().GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if paths.Trace, err = root.PersistentFlags().GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	session, err := prof.Start(afero.NewOsFs(), paths)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			logger.WithError(err).Warn("failed to finish profiles")
		}
	}, nil
}
