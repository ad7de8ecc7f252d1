package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"efguard/internal/diagfmt"
	"efguard/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.cs>",
	Short: "Tokenize a source file",
	Long:  `Tokenize breaks a source file into tokens with their leading and trailing trivia`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().StringSlice("symbols", nil, "preprocessor symbols (overrides the policy file)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
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

	result, err := driver.Tokenize(filePath, opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if result.Bag.Len() > 0 {
		colored, colorErr := useColor(cmd, os.Stderr)
		if colorErr != nil {
			return colorErr
		}
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{Color: colored, Context: 2})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
