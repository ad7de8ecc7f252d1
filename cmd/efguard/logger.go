package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var logger = logrus.New()

// newLogger configures the process logger from --log-level. Logs go to
// stderr so they never mix with diagnostics written to stdout.
func newLogger(cmd *cobra.Command) (*logrus.Logger, error) {
	levelFlag, err := cmd.Root().PersistentFlags().GetString("log-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get log-level flag: %w", err)
	}
	level, err := logrus.ParseLevel(levelFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetOutput(os.Stderr)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: level < logrus.DebugLevel})
	return logger, nil
}
