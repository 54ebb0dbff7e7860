package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OverrideCommand creates the override command group
func OverrideCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Manage product-level attribute overrides",
	}
	cmd.AddCommand(
		overrideSetStatic(),
		overrideSetMapping(),
		overrideExclude(),
		overrideClear(),
	)
	return cmd
}

func overrideSetStatic() *cobra.Command {
	return &cobra.Command{
		Use:   "set-static <product-id> <attribute> <value>",
		Short: "Pin an attribute to a literal value and reprocess the product",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine()
			if err != nil {
				return err
			}
			defer eng.close()

			if err := eng.orchestrator.SetStaticOverride(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Printf("Static override set for %s on product %s.\n", args[1], args[0])
			return nil
		},
	}
}

func overrideSetMapping() *cobra.Command {
	return &cobra.Command{
		Use:   "set-mapping <product-id> <attribute> <path>",
		Short: "Point an attribute at a custom extraction path and reprocess the product",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine()
			if err != nil {
				return err
			}
			defer eng.close()

			if err := eng.orchestrator.SetMappingOverride(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			fmt.Printf("Mapping override set for %s on product %s.\n", args[1], args[0])
			return nil
		},
	}
}

func overrideExclude() *cobra.Command {
	return &cobra.Command{
		Use:   "exclude <product-id> <attribute>",
		Short: "Explicitly exclude an attribute from the product's feed output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine()
			if err != nil {
				return err
			}
			defer eng.close()

			if err := eng.orchestrator.ExcludeAttribute(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Attribute %s excluded on product %s.\n", args[1], args[0])
			return nil
		},
	}
}

func overrideClear() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <product-id> <attribute>",
		Short: "Remove the product's override so resolution falls back through the chain",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine()
			if err != nil {
				return err
			}
			defer eng.close()

			if err := eng.orchestrator.ClearOverride(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Override cleared for %s on product %s.\n", args[1], args[0])
			return nil
		},
	}
}
