// Version command for the warehouse CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/warehouse/pkg/warehouse"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the warehouse version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("warehouse", warehouse.Version)
	},
}
