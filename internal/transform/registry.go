// Package transform holds the named pure functions that reshape extracted
// raw values into feed-ready form. The registry is populated once at startup
// so that a specification referencing an unknown transform fails loudly at
// construction time instead of per product.
package transform

import (
	"fmt"

	"shopfeed/internal/extract"
)

// Func is a transform implementation. Transforms are pure: they read the
// value, the raw source record, and the shop context, and return the shaped
// value or an error. A nil result means the attribute resolves to empty.
type Func func(value any, record map[string]any, shop *extract.ShopContext) (any, error)

// Transform pairs a function with its invocation category. Default-supplying
// transforms run even when the extracted input is empty, because their whole
// purpose is to supply a fallback constant; shaping transforms are skipped on
// empty input by the resolver.
type Transform struct {
	Fn          Func
	RunsOnEmpty bool
}

// ErrUnknown reports a transform name with no registered function.
var ErrUnknown = fmt.Errorf("transform: unknown transform")

// Registry maps transform names to implementations.
type Registry struct {
	byName map[string]Transform
}

// NewRegistry returns a registry with every builtin transform installed.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]Transform)}
	r.register("strip_html", Transform{Fn: stripHTML})
	r.register("price_with_currency", Transform{Fn: priceWithCurrency})
	r.register("weight_with_unit", Transform{Fn: weightWithUnit})
	r.register("dimension_with_unit", Transform{Fn: dimensionWithUnit})
	r.register("dimensions", Transform{Fn: packageDimensions})
	r.register("category_path", Transform{Fn: categoryPath})
	r.register("additional_images", Transform{Fn: additionalImages})
	r.register("title_case", Transform{Fn: titleCase})
	r.register("date_iso8601", Transform{Fn: dateISO8601})
	r.register("availability_status", Transform{Fn: availabilityStatus})
	r.register("default_condition", Transform{Fn: defaultCondition, RunsOnEmpty: true})
	r.register("default_inventory", Transform{Fn: defaultInventory, RunsOnEmpty: true})
	return r
}

func (r *Registry) register(name string, t Transform) {
	r.byName[name] = t
}

// Has reports whether a transform name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Get returns the registered transform for a name.
func (r *Registry) Get(name string) (Transform, error) {
	t, ok := r.byName[name]
	if !ok {
		return Transform{}, fmt.Errorf("%w: %s", ErrUnknown, name)
	}
	return t, nil
}

// Apply runs a named transform against a value.
func (r *Registry) Apply(name string, value any, record map[string]any, shop *extract.ShopContext) (any, error) {
	t, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return t.Fn(value, record, shop)
}
