package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"safecheck/pkg/signature"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newInspectCommand() *cobra.Command {
	var (
		format    string
		funcNames string
	)

	cmd := &cobra.Command{
		Use:   "inspect <file.go>",
		Short: "Extract declared signatures from a Go source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sigs, err := signature.SourceExtractor{}.ExtractFile(args[0])
			if err != nil {
				return err
			}

			if funcNames != "" {
				wanted := map[string]bool{}
				for _, name := range strings.Split(funcNames, ",") {
					wanted[strings.TrimSpace(name)] = true
				}
				filtered := sigs[:0]
				for _, sig := range sigs {
					if wanted[sig.Func] {
						filtered = append(filtered, sig)
					}
				}
				sigs = filtered
			}

			switch format {
			case "json":
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(sigs)
			case "table":
				table := tablewriter.NewWriter(os.Stdout)
				table.Header([]string{"Func", "Input", "Input kind", "Output", "Output kind"})
				for _, sig := range sigs {
					table.Append([]string{
						sig.Func,
						sig.Signature.Input.Name,
						string(sig.Signature.Input.Kind),
						sig.Signature.Output.Name,
						string(sig.Signature.Output.Kind),
					})
				}
				table.Render()
				return nil
			default:
				return fmt.Errorf("unknown format: %s", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format (table, json)")
	cmd.Flags().StringVar(&funcNames, "func", "", "comma-separated function names to include")

	return cmd
}
