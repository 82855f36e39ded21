// Update command for the warehouse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update <id> <field> <value>",
	Short: "Update a dynamic field on a model or project record",
	Long: `Update one dynamic field on the record with the given identity.
Static fields (payload, project name, timestamp) cannot be changed; move
the model instead.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIdentity(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "update:", err)
			os.Exit(exitUserError)
		}

		d, err := openDepot()
		if err != nil {
			fmt.Fprintln(os.Stderr, "update:", err)
			os.Exit(exitSysError)
		}
		defer d.Close()

		if err := d.UpdateField(id, args[1], parseScalar(args[2])); err != nil {
			fmt.Fprintln(os.Stderr, "update:", err)
			os.Exit(exitUserError)
		}
		fmt.Printf("Updated %s on record %d\n", args[1], id)
		return nil
	},
}
