// Root command for the warehouse CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/warehouse/internal/logging"
	"github.com/mesh-intelligence/warehouse/internal/paths"
	"github.com/mesh-intelligence/warehouse/pkg/warehouse"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfig   string
	flagLogLevel string
)

// configPath holds the resolved store descriptor path.
// Set by PersistentPreRunE so all subcommands can use it.
var configPath string

var rootCmd = &cobra.Command{
	Use:     "warehouse",
	Short:   "Warehouse is a catalog of versioned model records",
	Version: warehouse.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		p, err := paths.ResolveConfigPath(flagConfig)
		if err != nil {
			return err
		}
		configPath = p
		if flagLogLevel != "" {
			if err := logging.SetLevelAll(flagLogLevel); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "store descriptor path (default: $WAREHOUSE_CONFIG or the platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(modelCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(updateCmd)
}
