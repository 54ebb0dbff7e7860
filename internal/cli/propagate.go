package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"shopfeed/internal/reprocess"
)

// PropagateCommand creates the propagate command
func PropagateCommand() *cobra.Command {
	var (
		shopID    string
		attribute string
		mode      string
		path      string
		clearPath bool
	)

	cmd := &cobra.Command{
		Use:   "propagate",
		Short: "Change a shop-level mapping and reprocess the shop's products",
		Long: `Change a shop-level mapping for one attribute and reprocess the shop's
catalog in bounded batches.

Modes:
  apply_all           remove product-level overrides for the attribute first
  preserve_overrides  skip products that override the attribute

Examples:
  # Point the shop's brand attribute at a different field for all products
  shopfeed propagate --shop <id> --attribute brand --path vendor --mode apply_all

  # Remove the shop mapping, keeping per-product overrides intact
  shopfeed propagate --shop <id> --attribute brand --clear-path --mode preserve_overrides

  # Reprocess only, without touching the mapping table
  shopfeed propagate --shop <id> --attribute brand --mode preserve_overrides`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedMode, err := reprocess.ParseMode(mode)
			if err != nil {
				return err
			}
			if path != "" && clearPath {
				return fmt.Errorf("--path and --clear-path are mutually exclusive")
			}

			eng, err := newEngine()
			if err != nil {
				return err
			}
			defer eng.close()
			ctx := cmd.Context()

			var res *reprocess.Result
			switch {
			case path != "":
				res, err = eng.orchestrator.UpdateShopMapping(ctx, shopID, attribute, &path, parsedMode)
			case clearPath:
				res, err = eng.orchestrator.UpdateShopMapping(ctx, shopID, attribute, nil, parsedMode)
			default:
				res, err = eng.orchestrator.PropagateShopMappingChange(ctx, shopID, attribute, parsedMode)
			}
			if res != nil {
				fmt.Printf("Processed %d products: %d succeeded, %d failed.\n",
					res.Processed.Load(), res.Succeeded.Load(), res.Failed.Load())
				for id, msg := range res.Errors() {
					fmt.Printf("  %s: %s\n", id, msg)
				}
			}
			return err
		},
	}

	cmd.Flags().StringVar(&shopID, "shop", "", "Shop id (required)")
	cmd.Flags().StringVar(&attribute, "attribute", "", "Attribute name (required)")
	cmd.Flags().StringVar(&mode, "mode", string(reprocess.ModePreserveOverrides), "Propagation mode: apply_all or preserve_overrides")
	cmd.Flags().StringVar(&path, "path", "", "New shop-level extraction path for the attribute")
	cmd.Flags().BoolVar(&clearPath, "clear-path", false, "Remove the shop-level mapping for the attribute")
	_ = cmd.MarkFlagRequired("shop")
	_ = cmd.MarkFlagRequired("attribute")
	return cmd
}

// CountOverridesCommand creates the count-overrides command
func CountOverridesCommand() *cobra.Command {
	var (
		shopID    string
		attribute string
	)

	cmd := &cobra.Command{
		Use:   "count-overrides",
		Short: "Preview how many products override an attribute in a shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine()
			if err != nil {
				return err
			}
			defer eng.close()

			n, err := eng.orchestrator.CountOverridesForAttribute(cmd.Context(), shopID, attribute)
			if err != nil {
				return err
			}
			fmt.Printf("%d products override %s in shop %s.\n", n, attribute, shopID)
			return nil
		},
	}

	cmd.Flags().StringVar(&shopID, "shop", "", "Shop id (required)")
	cmd.Flags().StringVar(&attribute, "attribute", "", "Attribute name (required)")
	_ = cmd.MarkFlagRequired("shop")
	_ = cmd.MarkFlagRequired("attribute")
	return cmd
}
