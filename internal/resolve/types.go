package resolve

// OverrideKind distinguishes the two per-product override forms.
type OverrideKind string

const (
	// StaticOverride carries a literal value used verbatim, with no
	// extraction and no transform.
	StaticOverride OverrideKind = "static"
	// MappingOverride carries a custom extraction path; a nil path means
	// "explicitly exclude this attribute for this product".
	MappingOverride OverrideKind = "mapping"
)

// Override is a per-product instruction changing how one attribute resolves.
type Override struct {
	Kind  OverrideKind `json:"kind"`
	Value *string      `json:"value"`
}

// OverrideMap maps attribute name to the product's override, absent entries
// falling through to the shop mapping and specification default.
type OverrideMap map[string]Override

// ShopMapping maps attribute name to the shop's default extraction path.
// Never populated for locked attributes.
type ShopMapping map[string]string

// ValueSet is the resolved/effective value set for one product: attribute
// name to value, holding only attributes that resolved to a non-empty value.
// Values are strings or string lists. The set is a derived cache, always
// recomputed in full from its inputs and never a source of truth.
type ValueSet map[string]any

// GetString returns the attribute value when it resolved to a string.
func (s ValueSet) GetString(attr string) string {
	v, ok := s[attr]
	if !ok {
		return ""
	}
	str, _ := v.(string)
	return str
}

// Has reports whether an attribute resolved to a non-empty value.
func (s ValueSet) Has(attr string) bool {
	_, ok := s[attr]
	return ok
}

// IsEmpty reports the engine-wide emptiness rule for resolved values.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []string:
		return len(t) == 0
	case []any:
		return len(t) == 0
	}
	return false
}

// Flags carries the per-product inputs that bypass the precedence chain,
// plus the product identity for log context.
type Flags struct {
	ProductID string
	// Adult mirrors the product's dedicated adult column. It is the single
	// source of truth for the adult attribute and accepts no override.
	Adult bool
}
