// Package store persists the engine's per-shop and per-product state:
// the shop mapping table and context, and each product's source record,
// override map and cached resolution output. Documents are stored as JSONB;
// the engine treats them as opaque JSON-shaped values.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"shopfeed/internal/extract"
	"shopfeed/internal/resolve"
	"shopfeed/internal/validate"
)

var (
	// ErrProductNotFound reports an unknown product id.
	ErrProductNotFound = errors.New("store: product not found")
	// ErrShopNotFound reports an unknown shop id.
	ErrShopNotFound = errors.New("store: shop not found")
)

// Shop is the per-shop state the engine reads.
type Shop struct {
	ShopID          string
	CheckoutEnabled bool
	Context         extract.ShopContext
	Mapping         resolve.ShopMapping
}

// Product is the per-product state the engine reads. SourceRecord is nil
// until the ingestion collaborator has delivered the upstream document.
type Product struct {
	ProductID    string
	ShopID       string
	Adult        bool
	SourceRecord json.RawMessage
	Overrides    resolve.OverrideMap
}

// Store wraps the database connection.
type Store struct {
	db *sqlx.DB
}

// NewStore opens a connection and verifies it.
func NewStore(connString string) (*Store, error) {
	db, err := sqlx.Connect("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreFromDB constructs a Store from an existing *sql.DB. Useful for tests.
func NewStoreFromDB(db *sql.DB) *Store {
	return &Store{db: sqlx.NewDb(db, "postgres")}
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type shopRow struct {
	ShopID          string `db:"shop_id"`
	CheckoutEnabled bool   `db:"checkout_enabled"`
	extract.ShopContext
	Mapping []byte `db:"mapping"`
}

// GetShop loads a shop's context, checkout flag and mapping table.
func (s *Store) GetShop(ctx context.Context, shopID string) (*Shop, error) {
	var row shopRow
	query := `
		SELECT shop_id, checkout_enabled, currency, weight_unit, dimension_unit,
		       seller_name, shipping_label, return_policy_label, transit_time_label,
		       mapping
		FROM shops WHERE shop_id = $1`

	if err := s.db.GetContext(ctx, &row, query, shopID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrShopNotFound, shopID)
		}
		return nil, fmt.Errorf("failed to load shop %s: %w", shopID, err)
	}

	shop := &Shop{
		ShopID:          row.ShopID,
		CheckoutEnabled: row.CheckoutEnabled,
		Context:         row.ShopContext,
		Mapping:         resolve.ShopMapping{},
	}
	if len(row.Mapping) > 0 {
		if err := json.Unmarshal(row.Mapping, &shop.Mapping); err != nil {
			return nil, fmt.Errorf("failed to decode mapping for shop %s: %w", shopID, err)
		}
	}
	return shop, nil
}

type productRow struct {
	ProductID    string `db:"product_id"`
	ShopID       string `db:"shop_id"`
	Adult        bool   `db:"adult"`
	SourceRecord []byte `db:"source_record"`
	Overrides    []byte `db:"overrides"`
}

// GetProduct loads a product's source record, override map and adult flag.
func (s *Store) GetProduct(ctx context.Context, productID string) (*Product, error) {
	var row productRow
	query := `
		SELECT product_id, shop_id, adult, source_record, overrides
		FROM products WHERE product_id = $1`

	if err := s.db.GetContext(ctx, &row, query, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return nil, fmt.Errorf("failed to load product %s: %w", productID, err)
	}

	p := &Product{
		ProductID:    row.ProductID,
		ShopID:       row.ShopID,
		Adult:        row.Adult,
		SourceRecord: row.SourceRecord,
		Overrides:    resolve.OverrideMap{},
	}
	if len(row.Overrides) > 0 {
		if err := json.Unmarshal(row.Overrides, &p.Overrides); err != nil {
			return nil, fmt.Errorf("failed to decode overrides for product %s: %w", productID, err)
		}
	}
	return p, nil
}

// SaveResolution stores a product's resolved value set together with its
// validation result in a single statement, so the two are never persisted
// out of step.
func (s *Store) SaveResolution(ctx context.Context, productID string, resolved resolve.ValueSet, result validate.Result) error {
	resolvedJSON, err := json.Marshal(resolved)
	if err != nil {
		return fmt.Errorf("failed to encode resolved values: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode validation result: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET resolved = $2, validation = $3, reprocessed_at = NOW()
		WHERE product_id = $1`,
		productID, resolvedJSON, resultJSON)
	if err != nil {
		return fmt.Errorf("failed to save resolution for product %s: %w", productID, err)
	}
	return requireRow(res, ErrProductNotFound, productID)
}

// GetResolution loads the cached resolved value set and validation result.
func (s *Store) GetResolution(ctx context.Context, productID string) (resolve.ValueSet, *validate.Result, error) {
	var row struct {
		Resolved   []byte `db:"resolved"`
		Validation []byte `db:"validation"`
	}
	query := `SELECT resolved, validation FROM products WHERE product_id = $1`
	if err := s.db.GetContext(ctx, &row, query, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return nil, nil, fmt.Errorf("failed to load resolution for product %s: %w", productID, err)
	}

	resolved := resolve.ValueSet{}
	if len(row.Resolved) > 0 {
		if err := json.Unmarshal(row.Resolved, &resolved); err != nil {
			return nil, nil, fmt.Errorf("failed to decode resolved values for product %s: %w", productID, err)
		}
	}
	var result validate.Result
	if len(row.Validation) > 0 {
		if err := json.Unmarshal(row.Validation, &result); err != nil {
			return nil, nil, fmt.Errorf("failed to decode validation result for product %s: %w", productID, err)
		}
	}
	return resolved, &result, nil
}

// MergeOverride applies an atomic per-attribute patch to a product's
// override map. A nil override removes the attribute's entry. Patching a
// single key in place is what keeps two concurrent edits to different
// attributes from losing each other.
func (s *Store) MergeOverride(ctx context.Context, productID, attribute string, ov *resolve.Override) error {
	var (
		res sql.Result
		err error
	)
	if ov == nil {
		res, err = s.db.ExecContext(ctx, `
			UPDATE products SET overrides = overrides - $2
			WHERE product_id = $1`,
			productID, attribute)
	} else {
		var ovJSON []byte
		ovJSON, err = json.Marshal(ov)
		if err != nil {
			return fmt.Errorf("failed to encode override: %w", err)
		}
		res, err = s.db.ExecContext(ctx, `
			UPDATE products
			SET overrides = jsonb_set(COALESCE(overrides, '{}'::jsonb), ARRAY[$2], $3::jsonb, true)
			WHERE product_id = $1`,
			productID, attribute, ovJSON)
	}
	if err != nil {
		return fmt.Errorf("failed to merge override for product %s: %w", productID, err)
	}
	return requireRow(res, ErrProductNotFound, productID)
}

// SetShopMapping patches one attribute of a shop's mapping table. A nil path
// removes the mapping.
func (s *Store) SetShopMapping(ctx context.Context, shopID, attribute string, path *string) error {
	var (
		res sql.Result
		err error
	)
	if path == nil {
		res, err = s.db.ExecContext(ctx, `
			UPDATE shops SET mapping = mapping - $2
			WHERE shop_id = $1`,
			shopID, attribute)
	} else {
		pathJSON, mErr := json.Marshal(*path)
		if mErr != nil {
			return fmt.Errorf("failed to encode mapping path: %w", mErr)
		}
		res, err = s.db.ExecContext(ctx, `
			UPDATE shops
			SET mapping = jsonb_set(COALESCE(mapping, '{}'::jsonb), ARRAY[$2], $3::jsonb, true)
			WHERE shop_id = $1`,
			shopID, attribute, pathJSON)
	}
	if err != nil {
		return fmt.Errorf("failed to set mapping for shop %s: %w", shopID, err)
	}
	return requireRow(res, ErrShopNotFound, shopID)
}

// CountOverridesForAttribute reports how many products of a shop carry an
// override for the attribute. Callers use it to preview the blast radius of
// a propagation before choosing a mode.
func (s *Store) CountOverridesForAttribute(ctx context.Context, shopID, attribute string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM products WHERE shop_id = $1 AND overrides ? $2`
	if err := s.db.GetContext(ctx, &count, query, shopID, attribute); err != nil {
		return 0, fmt.Errorf("failed to count overrides for shop %s: %w", shopID, err)
	}
	return count, nil
}

// RemoveOverridesForAttribute drops the attribute's override from every
// product of the shop and reports how many products were touched.
func (s *Store) RemoveOverridesForAttribute(ctx context.Context, shopID, attribute string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE products SET overrides = overrides - $2
		WHERE shop_id = $1 AND overrides ? $2`,
		shopID, attribute)
	if err != nil {
		return 0, fmt.Errorf("failed to remove overrides for shop %s: %w", shopID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}

// ListProductIDs pages through a shop's product ids in keyset order.
func (s *Store) ListProductIDs(ctx context.Context, shopID, afterID string, limit int) ([]string, error) {
	var ids []string
	query := `
		SELECT product_id FROM products
		WHERE shop_id = $1 AND product_id > $2
		ORDER BY product_id LIMIT $3`
	if err := s.db.SelectContext(ctx, &ids, query, shopID, afterID, limit); err != nil {
		return nil, fmt.Errorf("failed to list products for shop %s: %w", shopID, err)
	}
	return ids, nil
}

// ListProductIDsWithoutOverride pages through the shop's products that have
// no override for the attribute.
func (s *Store) ListProductIDsWithoutOverride(ctx context.Context, shopID, attribute, afterID string, limit int) ([]string, error) {
	var ids []string
	query := `
		SELECT product_id FROM products
		WHERE shop_id = $1 AND product_id > $2 AND NOT overrides ? $3
		ORDER BY product_id LIMIT $4`
	if err := s.db.SelectContext(ctx, &ids, query, shopID, afterID, attribute, limit); err != nil {
		return nil, fmt.Errorf("failed to list products for shop %s: %w", shopID, err)
	}
	return ids, nil
}

// CreateShop inserts a shop row.
func (s *Store) CreateShop(ctx context.Context, shop *Shop) error {
	mappingJSON, err := json.Marshal(shop.Mapping)
	if err != nil {
		return fmt.Errorf("failed to encode mapping: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO shops
		(shop_id, checkout_enabled, currency, weight_unit, dimension_unit,
		 seller_name, shipping_label, return_policy_label, transit_time_label, mapping)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		shop.ShopID, shop.CheckoutEnabled,
		shop.Context.Currency, shop.Context.WeightUnit, shop.Context.DimensionUnit,
		shop.Context.SellerName, shop.Context.ShippingLabel,
		shop.Context.ReturnPolicyLabel, shop.Context.TransitTimeLabel,
		mappingJSON)
	if err != nil {
		return fmt.Errorf("failed to create shop %s: %w", shop.ShopID, err)
	}
	return nil
}

// CreateProduct inserts a product row.
func (s *Store) CreateProduct(ctx context.Context, p *Product) error {
	overridesJSON, err := json.Marshal(p.Overrides)
	if err != nil {
		return fmt.Errorf("failed to encode overrides: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO products (product_id, shop_id, adult, source_record, overrides)
		VALUES ($1, $2, $3, $4, $5)`,
		p.ProductID, p.ShopID, p.Adult, []byte(p.SourceRecord), overridesJSON)
	if err != nil {
		return fmt.Errorf("failed to create product %s: %w", p.ProductID, err)
	}
	return nil
}

func requireRow(res sql.Result, notFound error, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", notFound, id)
	}
	return nil
}
