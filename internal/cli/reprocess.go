package cli

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

// ReprocessCommand creates the reprocess command
func ReprocessCommand() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "reprocess <product-id>",
		Short: "Recompute and persist one product's resolved values and validation result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine()
			if err != nil {
				return err
			}
			defer eng.close()
			ctx := cmd.Context()
			productID := args[0]

			if err := eng.orchestrator.Reprocess(ctx, productID); err != nil {
				return err
			}

			resolved, result, err := eng.store.GetResolution(ctx, productID)
			if err != nil {
				return err
			}
			if dump {
				spew.Dump(resolved, result)
				return nil
			}

			fmt.Printf("Resolved %d attributes for product %s.\n", len(resolved), productID)
			if result != nil {
				fmt.Printf("Valid: %t (%d errors, %d warnings)\n",
					result.Valid, len(result.Errors), len(result.Warnings))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "Dump the full resolved value set and validation result")
	return cmd
}
