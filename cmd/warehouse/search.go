// Search command for the warehouse CLI.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/warehouse/pkg/depot"
)

var (
	searchProject string
	searchFilters []string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search model records by field filters",
	Long: `Search model records. Filters are given as field=expression and are
conjunctive; an expression is an operator (>=, <=, ==, >, <) followed by a
literal, for example:

  warehouse search --filter test_accuracy=">=0.95" --filter learning_type==supervised`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := make(map[string]string, len(searchFilters))
		for _, raw := range searchFilters {
			field, expr, ok := strings.Cut(raw, "=")
			if !ok {
				fmt.Fprintf(os.Stderr, "search: invalid filter %q (want field=expression)\n", raw)
				os.Exit(exitUserError)
			}
			// field==value splits at the first =, leaving half the
			// operator on the expression.
			if strings.HasPrefix(expr, "=") {
				expr = "=" + expr
			}
			filters[field] = expr
		}

		opts := depot.SearchOptions{ViewOnly: true}
		if searchProject != "" {
			ref := depot.ByName(searchProject)
			opts.Project = &ref
		}

		d, err := openDepot()
		if err != nil {
			fmt.Fprintln(os.Stderr, "search:", err)
			os.Exit(exitSysError)
		}
		defer d.Close()

		hits, err := d.Search(filters, opts)
		if err != nil {
			fmt.Fprintln(os.Stderr, "search:", err)
			os.Exit(exitUserError)
		}
		for _, hit := range hits {
			fmt.Println(hit.Display)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchProject, "project", "", "restrict search to one project's models")
	searchCmd.Flags().StringArrayVar(&searchFilters, "filter", nil, "filter as field=expression (repeatable)")
}
