// Package reprocess coordinates the read-recompute-persist cycle that keeps
// each product's cached resolved values and validation result consistent
// with its inputs, and propagates shop-level mapping changes across a
// catalog. All override mutation goes through this package so the lock
// invariants hold everywhere.
package reprocess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/time/rate"

	"shopfeed/internal/extract"
	"shopfeed/internal/feedspec"
	"shopfeed/internal/logger"
	"shopfeed/internal/resolve"
	"shopfeed/internal/store"
	"shopfeed/internal/validate"
)

var (
	// ErrSourceRecordMissing reports a product whose upstream document has
	// not been ingested. Resolution without a source record is meaningless,
	// so this surfaces to the caller instead of being swallowed.
	ErrSourceRecordMissing = errors.New("reprocess: source record missing")
	// ErrAttributeLocked rejects a mapping override or shop mapping for a
	// locked attribute.
	ErrAttributeLocked = errors.New("reprocess: attribute is locked")
	// ErrStaticNotAllowed rejects a static override for a locked attribute
	// outside the static allow-list.
	ErrStaticNotAllowed = errors.New("reprocess: static override not allowed")
)

// Store is the persistence collaborator. *store.Store satisfies it; tests
// substitute an in-memory fake.
type Store interface {
	GetProduct(ctx context.Context, productID string) (*store.Product, error)
	GetShop(ctx context.Context, shopID string) (*store.Shop, error)
	SaveResolution(ctx context.Context, productID string, resolved resolve.ValueSet, result validate.Result) error
	MergeOverride(ctx context.Context, productID, attribute string, ov *resolve.Override) error
	SetShopMapping(ctx context.Context, shopID, attribute string, path *string) error
	CountOverridesForAttribute(ctx context.Context, shopID, attribute string) (int, error)
	RemoveOverridesForAttribute(ctx context.Context, shopID, attribute string) (int64, error)
	ListProductIDs(ctx context.Context, shopID, afterID string, limit int) ([]string, error)
	ListProductIDsWithoutOverride(ctx context.Context, shopID, attribute, afterID string, limit int) ([]string, error)
}

// Config bounds the propagation machinery.
type Config struct {
	// BatchSize is how many products one propagation batch loads.
	BatchSize int
	// BatchConcurrency is how many products reprocess concurrently inside
	// a batch.
	BatchConcurrency int
	// ReprocessPerSec rate-limits reprocessing across a propagation run.
	ReprocessPerSec float64
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.BatchConcurrency <= 0 {
		c.BatchConcurrency = 8
	}
	if c.ReprocessPerSec <= 0 {
		c.ReprocessPerSec = 50
	}
	return c
}

// Orchestrator ties the resolver and validator to the store.
type Orchestrator struct {
	store     Store
	registry  *feedspec.Registry
	resolver  *resolve.Resolver
	validator *validate.Validator
	log       logger.Logger
	cfg       Config
	limiter   *rate.Limiter
	locks     *productLocks
}

// New creates an orchestrator.
func New(
	st Store,
	registry *feedspec.Registry,
	resolver *resolve.Resolver,
	validator *validate.Validator,
	log logger.Logger,
	cfg Config,
) *Orchestrator {
	cfg = cfg.withDefaults()
	return &Orchestrator{
		store:     st,
		registry:  registry,
		resolver:  resolver,
		validator: validator,
		log:       log,
		cfg:       cfg,
		limiter:   rate.NewLimiter(rate.Limit(cfg.ReprocessPerSec), int(cfg.ReprocessPerSec)),
		locks:     newProductLocks(),
	}
}

// Reprocess recomputes and persists one product's resolved value set and
// validation result. At most one reprocess is in flight per product; the
// stored pair is always written together.
func (o *Orchestrator) Reprocess(ctx context.Context, productID string) error {
	unlock := o.locks.lock(productID)
	defer unlock()
	return o.reprocessLocked(ctx, productID)
}

func (o *Orchestrator) reprocessLocked(ctx context.Context, productID string) error {
	p, err := o.store.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if len(p.SourceRecord) == 0 {
		return fmt.Errorf("%w: product %s", ErrSourceRecordMissing, productID)
	}

	shop, err := o.store.GetShop(ctx, p.ShopID)
	if err != nil {
		return err
	}

	var record map[string]any
	if err := json.Unmarshal(p.SourceRecord, &record); err != nil {
		return fmt.Errorf("failed to decode source record for product %s: %w", productID, err)
	}

	resolved := o.resolver.ResolveAll(
		o.registry.All(), record, &shop.Context, shop.Mapping, p.Overrides,
		resolve.Flags{ProductID: p.ProductID, Adult: p.Adult})
	result := o.validator.Validate(resolved, shop.CheckoutEnabled)

	if err := o.store.SaveResolution(ctx, productID, resolved, result); err != nil {
		return err
	}
	o.log.Debugw("product reprocessed",
		"product_id", productID, "attributes", len(resolved), "valid", result.Valid)
	return nil
}

// SetStaticOverride stores a literal value for one attribute and
// reprocesses the product. Rejected for locked attributes outside the
// static allow-list.
func (o *Orchestrator) SetStaticOverride(ctx context.Context, productID, attribute, value string) error {
	spec, err := o.registry.Get(attribute)
	if err != nil {
		return err
	}
	if spec.Locked && !spec.AllowStatic {
		return fmt.Errorf("%w: %s", ErrStaticNotAllowed, attribute)
	}

	unlock := o.locks.lock(productID)
	defer unlock()

	ov := &resolve.Override{Kind: resolve.StaticOverride, Value: &value}
	if err := o.store.MergeOverride(ctx, productID, attribute, ov); err != nil {
		return err
	}
	return o.reprocessLocked(ctx, productID)
}

// SetMappingOverride stores a custom extraction path for one attribute and
// reprocesses the product. Rejected for locked attributes; the path must be
// well formed.
func (o *Orchestrator) SetMappingOverride(ctx context.Context, productID, attribute, path string) error {
	spec, err := o.registry.Get(attribute)
	if err != nil {
		return err
	}
	if spec.Locked {
		return fmt.Errorf("%w: %s", ErrAttributeLocked, attribute)
	}
	if _, err := extract.ParsePath(path); err != nil {
		return fmt.Errorf("invalid override path for %s: %w", attribute, err)
	}

	unlock := o.locks.lock(productID)
	defer unlock()

	ov := &resolve.Override{Kind: resolve.MappingOverride, Value: &path}
	if err := o.store.MergeOverride(ctx, productID, attribute, ov); err != nil {
		return err
	}
	return o.reprocessLocked(ctx, productID)
}

// ExcludeAttribute stores an explicit exclusion (a mapping override with a
// null path) and reprocesses the product.
func (o *Orchestrator) ExcludeAttribute(ctx context.Context, productID, attribute string) error {
	spec, err := o.registry.Get(attribute)
	if err != nil {
		return err
	}
	if spec.Locked {
		return fmt.Errorf("%w: %s", ErrAttributeLocked, attribute)
	}

	unlock := o.locks.lock(productID)
	defer unlock()

	ov := &resolve.Override{Kind: resolve.MappingOverride, Value: nil}
	if err := o.store.MergeOverride(ctx, productID, attribute, ov); err != nil {
		return err
	}
	return o.reprocessLocked(ctx, productID)
}

// ClearOverride removes the product's override for one attribute, letting
// resolution fall back through the chain, and reprocesses the product.
func (o *Orchestrator) ClearOverride(ctx context.Context, productID, attribute string) error {
	if _, err := o.registry.Get(attribute); err != nil {
		return err
	}

	unlock := o.locks.lock(productID)
	defer unlock()

	if err := o.store.MergeOverride(ctx, productID, attribute, nil); err != nil {
		return err
	}
	return o.reprocessLocked(ctx, productID)
}

// UpdateShopMapping persists a new shop-level mapping path (nil removes it)
// and propagates the change across the shop in the chosen mode.
func (o *Orchestrator) UpdateShopMapping(ctx context.Context, shopID, attribute string, path *string, mode Mode) (*Result, error) {
	spec, err := o.registry.Get(attribute)
	if err != nil {
		return nil, err
	}
	if spec.Locked {
		return nil, fmt.Errorf("%w: %s", ErrAttributeLocked, attribute)
	}
	if path != nil {
		if _, err := extract.ParsePath(*path); err != nil {
			return nil, fmt.Errorf("invalid mapping path for %s: %w", attribute, err)
		}
	}

	if err := o.store.SetShopMapping(ctx, shopID, attribute, path); err != nil {
		return nil, err
	}
	return o.PropagateShopMappingChange(ctx, shopID, attribute, mode)
}

// CountOverridesForAttribute previews how many products a propagation in
// apply_all mode would strip of their override.
func (o *Orchestrator) CountOverridesForAttribute(ctx context.Context, shopID, attribute string) (int, error) {
	if _, err := o.registry.Get(attribute); err != nil {
		return 0, err
	}
	return o.store.CountOverridesForAttribute(ctx, shopID, attribute)
}
