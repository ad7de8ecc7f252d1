package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"efguard/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show efguard build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		colored, err := useColor(cmd, os.Stdout)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), version.Info(colored))
		return err
	},
}
