package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"efguard/internal/version"
)

// errReported signals that diagnostics with error severity were printed.
// It carries no message of its own.
var errReported = errors.New("errors reported")

var rootCmd = &cobra.Command{
	Use:   "efguard",
	Short: "Data-access initialization guard",
	Long: `efguard checks C# sources for auto-migration calls outside development-only
#if regions and for connection-string lookups whose keys are missing from the
settings document, and can rewrite the sources to fix both.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := newLogger(cmd)
		return err
	},
}

func init() {
	rootCmd.AddCommand(diagCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("log-level", "warning", "log level (debug|info|warning|error)")
	rootCmd.PersistentFlags().String("config", "", "policy file (default: nearest efguard.toml or efguard.yaml)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime execution trace to file")
}

func main() {
	rootCmd.Version = version.Version

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	var colored bool
	switch colorFlag {
	case "on":
		colored = true
	case "off":
		colored = false
	case "auto":
		colored = isTerminal(f)
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	color.NoColor = !colored
	return colored, nil
}
