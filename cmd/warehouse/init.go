// Init command for the warehouse CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// defaultDescriptor is written on first init: a direct file-backed store
// next to the descriptor.
const defaultDescriptor = `# Warehouse store descriptor.
# engine: one of memory, sqlite, postgres
engine: sqlite
path: warehouse.db

# For postgres instead:
# engine: postgres
# dsn: postgres://localhost/warehouse?sslmode=disable
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default store descriptor and initialize the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			if err := os.WriteFile(configPath, []byte(defaultDescriptor), 0o644); err != nil {
				fmt.Fprintln(os.Stderr, "init:", err)
				os.Exit(exitSysError)
			}
		}

		// Opening the depot creates the store file and both indexes.
		d, err := openDepot()
		if err != nil {
			fmt.Fprintln(os.Stderr, "init:", err)
			os.Exit(exitSysError)
		}
		defer d.Close()

		fmt.Println("Warehouse initialized")
		fmt.Println("  descriptor:", configPath)
		return nil
	},
}
