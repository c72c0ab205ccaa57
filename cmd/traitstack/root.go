// Package cmd implements the traitstack CLI: a Cobra-based batch runner
// and catalog validator for the trait-extraction engine (SPEC_FULL.md
// §4.10), grounded on gnoverse-tlin/cmd/root.go's root-command and
// persistent-flags pattern.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "traitstack",
	Short: "Extract biological trait measurements from museum specimen text",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = zap.NewProduction()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the traitstack CLI, exiting the process with status 1 on
// any command error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to a YAML config file")
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(validateCatalogCmd)
}
