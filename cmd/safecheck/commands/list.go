package commands

import (
	"os"

	"safecheck/pkg/examples"
	"safecheck/pkg/gen"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available components",
		RunE: func(cmd *cobra.Command, args []string) error {
			var targets []string
			for _, target := range examples.AllTargets() {
				targets = append(targets, target.Name)
			}
			var generators []string
			for _, g := range gen.All() {
				generators = append(generators, g.Name()+" ("+string(g.Kind())+")")
			}
			writeList("Targets", targets)
			writeList("Generators", generators)
			writeList("Extractors", []string{"reflect", "source"})
			writeList("Formats", []string{"table", "json", "html", "markdown", "csv"})
			return nil
		},
	}
	return cmd
}

func writeList(title string, items []string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{title})
	for _, item := range items {
		table.Append([]string{item})
	}
	table.Render()
}
