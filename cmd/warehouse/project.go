// Project subcommands for the warehouse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/warehouse/pkg/depot"
	"github.com/mesh-intelligence/warehouse/pkg/types"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var (
	projectAddDescription string
	projectRemoveMoveTo   string
)

var projectAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDepot()
		if err != nil {
			fmt.Fprintln(os.Stderr, "project add:", err)
			os.Exit(exitSysError)
		}
		defer d.Close()

		p := types.NewProject(args[0], projectAddDescription)
		if err := d.AddProject(p); err != nil {
			fmt.Fprintln(os.Stderr, "project add:", err)
			os.Exit(exitUserError)
		}
		fmt.Printf("Added project %q (%d)\n", p.Name(), p.ID())
		return nil
	},
}

var projectRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a project and its models",
	Long: `Remove a project. Member models are removed with it unless
--move-to names a target project, in which case each member is re-homed
there (receiving a new identity) before the project is deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDepot()
		if err != nil {
			fmt.Fprintln(os.Stderr, "project remove:", err)
			os.Exit(exitSysError)
		}
		defer d.Close()

		var moveTo *depot.Ref
		if projectRemoveMoveTo != "" {
			ref := depot.ByName(projectRemoveMoveTo)
			moveTo = &ref
		}
		if err := d.RemoveProject(types.ProjectIdentity(args[0]), moveTo); err != nil {
			fmt.Fprintln(os.Stderr, "project remove:", err)
			os.Exit(exitUserError)
		}
		fmt.Printf("Removed project %q\n", args[0])
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List project names",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDepot()
		if err != nil {
			fmt.Fprintln(os.Stderr, "project list:", err)
			os.Exit(exitSysError)
		}
		defer d.Close()

		for _, name := range d.ProjectNames() {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	projectAddCmd.Flags().StringVar(&projectAddDescription, "description", "", "project description")
	projectRemoveCmd.Flags().StringVar(&projectRemoveMoveTo, "move-to", "", "re-home member models into this project")

	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectRemoveCmd)
	projectCmd.AddCommand(projectListCmd)
}
