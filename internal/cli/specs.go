package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// SpecsCommand creates the specs command
func SpecsCommand() *cobra.Command {
	var requiredOnly bool

	cmd := &cobra.Command{
		Use:   "specs",
		Short: "List the attribute specifications the engine ships with",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngineWithoutStore()
			if err != nil {
				return err
			}

			specs := eng.registry.All()
			if requiredOnly {
				specs = eng.registry.RequiredAttributes()
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tREQUIREMENT\tDEFAULT PATH\tTRANSFORM\tLOCKED")
			for _, spec := range specs {
				path, tr := "-", "-"
				if spec.Default != nil {
					if spec.Default.Path != "" {
						path = spec.Default.Path
					}
					if spec.Default.Transform != "" {
						tr = spec.Default.Transform
					}
				}
				locked := ""
				if spec.Locked {
					locked = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					spec.Name, spec.Type, spec.Requirement, path, tr, locked)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("\n%d attribute specifications.\n", len(specs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&requiredOnly, "required", false, "List only required attributes")
	return cmd
}
