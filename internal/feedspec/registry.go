package feedspec

import (
	"fmt"
)

// ErrNotFound is returned by Get for unknown attribute names. Callers treat
// unknown attributes as "ignore or reject", never as a data error.
var ErrNotFound = fmt.Errorf("feedspec: attribute not found")

// Registry is the immutable table of field specifications. It is constructed
// once at startup and injected into the resolver and validator; nothing in
// the engine reads specification state from a global.
type Registry struct {
	ordered []FieldSpecification
	byName  map[string]*FieldSpecification
}

// NewRegistry builds a registry from a specification list. Duplicate names
// are a configuration error.
func NewRegistry(specs []FieldSpecification) (*Registry, error) {
	r := &Registry{
		ordered: make([]FieldSpecification, len(specs)),
		byName:  make(map[string]*FieldSpecification, len(specs)),
	}
	copy(r.ordered, specs)

	for i := range r.ordered {
		spec := &r.ordered[i]
		if spec.Name == "" {
			return nil, fmt.Errorf("feedspec: specification %d has no name", i)
		}
		if _, dup := r.byName[spec.Name]; dup {
			return nil, fmt.Errorf("feedspec: duplicate specification %q", spec.Name)
		}
		r.byName[spec.Name] = spec
	}
	return r, nil
}

// Get returns the specification for an attribute name.
func (r *Registry) Get(name string) (*FieldSpecification, error) {
	spec, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return spec, nil
}

// All returns every specification in seed order.
func (r *Registry) All() []FieldSpecification {
	out := make([]FieldSpecification, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// RequiredAttributes returns the subset with requirement level Required.
func (r *Registry) RequiredAttributes() []FieldSpecification {
	var out []FieldSpecification
	for _, spec := range r.ordered {
		if spec.Requirement == Required {
			out = append(out, spec)
		}
	}
	return out
}

// LockedAttributeSet returns the names of all locked attributes.
func (r *Registry) LockedAttributeSet() map[string]bool {
	out := make(map[string]bool)
	for _, spec := range r.ordered {
		if spec.Locked {
			out[spec.Name] = true
		}
	}
	return out
}

// Len reports the number of specifications.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// PathParser parses an extraction path and reports malformed syntax. It is
// satisfied by the extract package and kept as an interface here so the
// registry has no dependency on it.
type PathParser interface {
	CheckPath(path string) error
}

// TransformSet reports whether a named transform is registered.
type TransformSet interface {
	Has(name string) bool
}

// Check cross-validates every specification against the path parser and the
// transform registry. Mapping problems are configuration errors and must
// surface at startup, not during per-product resolution.
func (r *Registry) Check(paths PathParser, transforms TransformSet) error {
	for _, spec := range r.ordered {
		if spec.Default == nil {
			continue
		}
		if spec.Default.Path == "" {
			return fmt.Errorf("feedspec: %s has a default mapping with no path", spec.Name)
		}
		if err := paths.CheckPath(spec.Default.Path); err != nil {
			return fmt.Errorf("feedspec: %s default path: %w", spec.Name, err)
		}
		if spec.Default.Fallback != "" {
			if err := paths.CheckPath(spec.Default.Fallback); err != nil {
				return fmt.Errorf("feedspec: %s fallback path: %w", spec.Name, err)
			}
		}
		if spec.Default.Transform != "" && !transforms.Has(spec.Default.Transform) {
			return fmt.Errorf("feedspec: %s references unknown transform %q", spec.Name, spec.Default.Transform)
		}
	}
	return nil
}
