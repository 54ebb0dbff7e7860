package store

import (
	"context"
	"fmt"
)

// migrationDDL creates the two tables the engine owns. Shops hold the
// mapping table and context; products hold the source record, the override
// map and the cached resolution output.
var migrationDDL = []string{
	`CREATE TABLE IF NOT EXISTS shops (
		shop_id UUID PRIMARY KEY,
		checkout_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		currency TEXT NOT NULL DEFAULT '',
		weight_unit TEXT NOT NULL DEFAULT '',
		dimension_unit TEXT NOT NULL DEFAULT '',
		seller_name TEXT NOT NULL DEFAULT '',
		shipping_label TEXT NOT NULL DEFAULT '',
		return_policy_label TEXT NOT NULL DEFAULT '',
		transit_time_label TEXT NOT NULL DEFAULT '',
		mapping JSONB NOT NULL DEFAULT '{}'::jsonb
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id UUID PRIMARY KEY,
		shop_id UUID NOT NULL REFERENCES shops(shop_id) ON DELETE CASCADE,
		adult BOOLEAN NOT NULL DEFAULT FALSE,
		source_record JSONB,
		overrides JSONB NOT NULL DEFAULT '{}'::jsonb,
		resolved JSONB,
		validation JSONB,
		reprocessed_at TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_shop ON products (shop_id, product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_products_overrides ON products USING GIN (overrides)`,
}

// Migrate applies the schema. Statements are idempotent and safe to re-run.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range migrationDDL {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
