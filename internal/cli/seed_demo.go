package cli

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"shopfeed/internal/extract"
	"shopfeed/internal/resolve"
	"shopfeed/internal/store"
)

// demoRecord is a representative upstream product document exercising most
// of the default mapping paths.
var demoRecord = map[string]any{
	"id":        "demo-sku-1",
	"title":     "Trail Running Shoe",
	"body_html": "<p>Lightweight shoe for <b>technical</b> trails.</p>",
	"url":       "https://demo.example.com/products/trail-shoe",
	"vendor":    "Demo Sports",
	"barcode":   "4006381333931",
	"image": map[string]any{
		"src": "https://demo.example.com/img/trail-shoe.jpg",
	},
	"images": []any{
		map[string]any{"src": "https://demo.example.com/img/trail-shoe.jpg"},
		map[string]any{"src": "https://demo.example.com/img/trail-shoe-side.jpg"},
	},
	"variants": []any{
		map[string]any{"price": "89.90", "inventory_quantity": float64(12)},
	},
	"weight": float64(0.62),
	"dimensions": map[string]any{
		"length": float64(32),
		"width":  float64(21),
		"height": float64(12),
	},
}

// SeedDemoCommand creates the seed-demo command
func SeedDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-demo",
		Short: "Create a demo shop and product and run a first resolution",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := newEngine()
			if err != nil {
				return err
			}
			defer eng.close()
			ctx := cmd.Context()

			shop := &store.Shop{
				ShopID:          uuid.NewString(),
				CheckoutEnabled: true,
				Context: extract.ShopContext{
					Currency:      "EUR",
					WeightUnit:    "kg",
					DimensionUnit: "cm",
					SellerName:    "Demo Sports GmbH",
					ShippingLabel: "standard",
				},
				Mapping: resolve.ShopMapping{},
			}
			if err := eng.store.CreateShop(ctx, shop); err != nil {
				return err
			}

			raw, err := json.Marshal(demoRecord)
			if err != nil {
				return err
			}
			product := &store.Product{
				ProductID:    uuid.NewString(),
				ShopID:       shop.ShopID,
				SourceRecord: raw,
			}
			if err := eng.store.CreateProduct(ctx, product); err != nil {
				return err
			}

			if err := eng.orchestrator.Reprocess(ctx, product.ProductID); err != nil {
				return err
			}
			fmt.Printf("Seeded shop %s with product %s.\n", shop.ShopID, product.ProductID)
			return nil
		},
	}
}
