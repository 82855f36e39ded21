// Model subcommands for the warehouse CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/warehouse/pkg/depot"
	"github.com/mesh-intelligence/warehouse/pkg/identity"
	"github.com/mesh-intelligence/warehouse/pkg/types"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Manage model records",
}

var (
	modelAddProject string
	modelAddPayload string
	modelAddLabel   string
	modelAddMeta    string
	modelAddSet     []string
)

var modelAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a model record under a project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(modelAddPayload)
		if err != nil {
			fmt.Fprintln(os.Stderr, "model add:", err)
			os.Exit(exitUserError)
		}
		label := modelAddLabel
		if label == "" {
			label = strings.TrimPrefix(filepath.Ext(modelAddPayload), ".")
		}

		var meta *types.ModelMeta
		if modelAddMeta != "" {
			meta, err = metaFromYAML(modelAddMeta)
		} else {
			meta, err = types.NewModelMeta(nil)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "model add:", err)
			os.Exit(exitUserError)
		}
		if err := applyMetaPairs(meta, modelAddSet); err != nil {
			fmt.Fprintln(os.Stderr, "model add:", err)
			os.Exit(exitUserError)
		}

		d, err := openDepot()
		if err != nil {
			fmt.Fprintln(os.Stderr, "model add:", err)
			os.Exit(exitSysError)
		}
		defer d.Close()

		m := types.NewModel(identity.Blob{Label: label, Data: data}, modelAddProject, meta)
		if err := d.AddModel(m); err != nil {
			fmt.Fprintln(os.Stderr, "model add:", err)
			os.Exit(exitUserError)
		}
		fmt.Printf("Added model %d to project %q\n", m.ID(), modelAddProject)
		return nil
	},
}

var modelRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a model record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIdentity(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "model remove:", err)
			os.Exit(exitUserError)
		}

		d, err := openDepot()
		if err != nil {
			fmt.Fprintln(os.Stderr, "model remove:", err)
			os.Exit(exitSysError)
		}
		defer d.Close()

		if err := d.RemoveModel(id); err != nil {
			fmt.Fprintln(os.Stderr, "model remove:", err)
			os.Exit(exitUserError)
		}
		fmt.Printf("Removed model %d\n", id)
		return nil
	},
}

var modelMoveCmd = &cobra.Command{
	Use:   "move <id> <project>",
	Short: "Move a model record to another project",
	Long: `Move a model to another project. The project name and timestamp are
static fields, so the moved model is a new record with a new identity.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIdentity(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, "model move:", err)
			os.Exit(exitUserError)
		}

		d, err := openDepot()
		if err != nil {
			fmt.Fprintln(os.Stderr, "model move:", err)
			os.Exit(exitSysError)
		}
		defer d.Close()

		if err := d.MoveModel(id, depot.ByName(args[1])); err != nil {
			fmt.Fprintln(os.Stderr, "model move:", err)
			os.Exit(exitUserError)
		}
		fmt.Printf("Moved model %d to project %q\n", id, args[1])
		return nil
	},
}

func init() {
	modelAddCmd.Flags().StringVar(&modelAddProject, "project", "", "owning project name (required)")
	modelAddCmd.Flags().StringVar(&modelAddPayload, "payload", "", "path to the model payload file (required)")
	modelAddCmd.Flags().StringVar(&modelAddLabel, "label", "", "payload label (default: payload file extension)")
	modelAddCmd.Flags().StringVar(&modelAddMeta, "meta", "", "path to a YAML file of meta fields")
	modelAddCmd.Flags().StringArrayVar(&modelAddSet, "set", nil, "meta field as key=value (repeatable)")
	modelAddCmd.MarkFlagRequired("project")
	modelAddCmd.MarkFlagRequired("payload")

	modelCmd.AddCommand(modelAddCmd)
	modelCmd.AddCommand(modelRemoveCmd)
	modelCmd.AddCommand(modelMoveCmd)
}
