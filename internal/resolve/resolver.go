// Package resolve applies the per-attribute precedence chain that decides
// which data source wins for every attribute of a product: static override,
// mapping override, shop mapping, specification default, empty.
package resolve

import (
	"fmt"

	"shopfeed/internal/extract"
	"shopfeed/internal/feedspec"
	"shopfeed/internal/logger"
	"shopfeed/internal/transform"
)

// The two special-flag attributes that bypass the chain entirely.
const (
	// AttrIsBundle is hard-coded: bundle support is not yet available.
	AttrIsBundle = "is_bundle"
	// AttrAdult is driven solely by the product's adult column.
	AttrAdult = "adult"

	isBundleConstant = "no"
)

// Resolver computes resolved value sets. It is stateless between calls and
// safe for concurrent use across products.
type Resolver struct {
	transforms *transform.Registry
	log        logger.Logger
}

// New creates a resolver over the given transform registry.
func New(transforms *transform.Registry, log logger.Logger) *Resolver {
	return &Resolver{transforms: transforms, log: log}
}

// ResolveAll resolves every specification independently and returns the
// sparse value set. Attribute order does not matter; no attribute's
// resolution depends on another's resolved value.
func (r *Resolver) ResolveAll(
	specs []feedspec.FieldSpecification,
	record map[string]any,
	shop *extract.ShopContext,
	mapping ShopMapping,
	overrides OverrideMap,
	flags Flags,
) ValueSet {
	out := make(ValueSet)
	for i := range specs {
		spec := &specs[i]
		v := r.resolveAttribute(spec, record, shop, mapping, overrides, flags)
		if !IsEmpty(v) {
			out[spec.Name] = v
		}
	}
	return out
}

func (r *Resolver) resolveAttribute(
	spec *feedspec.FieldSpecification,
	record map[string]any,
	shop *extract.ShopContext,
	mapping ShopMapping,
	overrides OverrideMap,
	flags Flags,
) any {
	switch spec.Name {
	case AttrIsBundle:
		return isBundleConstant
	case AttrAdult:
		if flags.Adult {
			return "yes"
		}
		return "no"
	}

	if ov, ok := overrides[spec.Name]; ok {
		switch ov.Kind {
		case StaticOverride:
			if (!spec.Locked || spec.AllowStatic) && ov.Value != nil {
				return *ov.Value
			}
			// Ineligible static override: fall through the chain.
		case MappingOverride:
			if !spec.Locked {
				if ov.Value == nil {
					// Explicit exclusion.
					return nil
				}
				return r.extractMapped(spec, *ov.Value, record, shop, flags)
			}
		}
	}

	if path, ok := mapping[spec.Name]; ok && path != "" && !spec.Locked {
		return r.extractMapped(spec, path, record, shop, flags)
	}

	if spec.Default != nil {
		return r.extractMapped(spec, spec.Default.Path, record, shop, flags)
	}

	return nil
}

// extractMapped extracts via the given path, trying the specification's
// configured fallback path when the primary extraction is empty, then runs
// the specification's transform. Shop-level paths are literal passthroughs
// of shop settings and skip the transform step entirely.
func (r *Resolver) extractMapped(
	spec *feedspec.FieldSpecification,
	path string,
	record map[string]any,
	shop *extract.ShopContext,
	flags Flags,
) any {
	p, err := extract.ParsePath(path)
	if err != nil {
		// Seed paths are checked at startup; this guards paths that reach
		// the resolver through overrides or shop mappings.
		r.log.Warnw("skipping attribute with malformed path",
			"product_id", flags.ProductID, "attribute", spec.Name, "path", path, "error", err)
		return nil
	}

	if p.ShopLevel() {
		v, ok := extract.Extract(record, shop, p)
		if !ok {
			return nil
		}
		return v
	}

	value, ok := extract.Extract(record, shop, p)
	if !ok && spec.Default != nil && spec.Default.Fallback != "" {
		fb, fbErr := extract.ParsePath(spec.Default.Fallback)
		if fbErr == nil {
			value, ok = extract.Extract(record, shop, fb)
		}
	}

	name := ""
	if spec.Default != nil {
		name = spec.Default.Transform
	}
	if name == "" {
		if !ok {
			return nil
		}
		return value
	}

	t, err := r.transforms.Get(name)
	if err != nil {
		r.log.Errorw("specification references unregistered transform",
			"product_id", flags.ProductID, "attribute", spec.Name, "transform", name)
		return nil
	}
	if !ok && !t.RunsOnEmpty {
		return nil
	}

	result, err := r.applyTransform(t, value, record, shop)
	if err != nil {
		// A single bad transform never aborts resolution of the other
		// attributes; the value degrades to empty.
		r.log.Warnw("transform failed",
			"product_id", flags.ProductID, "attribute", spec.Name, "transform", name, "error", err)
		return nil
	}
	return result
}

// applyTransform invokes a transform function, converting a panic on an
// unexpected input shape into an error so it degrades like any other
// transform failure.
func (r *Resolver) applyTransform(
	t transform.Transform,
	value any,
	record map[string]any,
	shop *extract.ShopContext,
) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("transform panic: %v", rec)
		}
	}()
	return t.Fn(value, record, shop)
}
