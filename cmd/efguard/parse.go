package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"efguard/internal/diagfmt"
	"efguard/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.cs>",
	Short: "Parse a source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "tree", "output format (tree|text)")
	parseCmd.Flags().Bool("trivia", false, "include trivia in the tree dump")
	parseCmd.Flags().StringSlice("symbols", nil, "preprocessor symbols (overrides the policy file)")
}

func runParse(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	trivia, err := cmd.Flags().GetBool("trivia")
	if err != nil {
		return fmt.Errorf("failed to get trivia flag: %w", err)
	}
	symbols, err := cmd.Flags().GetStringSlice("symbols")
	if err != nil {
		return fmt.Errorf("failed to get symbols flag: %w", err)
	}

	opts, err := driverOptions(cmd, afero.NewOsFs(), filePath)
	if err != nil {
		return err
	}
	if len(symbols) > 0 {
		opts.Symbols = symbols
	}

	result, err := driver.Parse(filePath, opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		colored, colorErr := useColor(cmd, os.Stderr)
		if colorErr != nil {
			return colorErr
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{Color: colored, Context: 2})
	}

	switch format {
	case "tree":
		return diagfmt.FormatTree(cmd.OutOrStdout(), result.Tree, diagfmt.TreeOpts{Trivia: trivia})
	case "text":
		// round trip: the tree serializes back to the exact input
		_, err = fmt.Fprint(cmd.OutOrStdout(), result.Tree.Text())
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
