// Package validate evaluates requirement levels, dependency conditions, and
// per-attribute format rules against a resolved value set. Validation never
// mutates the set and never short-circuits: the full error and warning maps
// are always computed.
package validate

import (
	"fmt"

	"shopfeed/internal/feedspec"
	"shopfeed/internal/resolve"
)

// Result is the validation outcome for one product. Valid is true iff no
// attribute has errors; warnings never affect validity.
type Result struct {
	Valid    bool                `json:"valid"`
	Errors   map[string][]string `json:"errors"`
	Warnings map[string][]string `json:"warnings"`
}

// Validator evaluates a resolved value set against the specification table.
type Validator struct {
	registry *feedspec.Registry
}

// New creates a validator over the given registry.
func New(registry *feedspec.Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate computes the full validation result. checkoutEnabled is the
// shop-level flag consumed by checkout-dependent conditions.
func (v *Validator) Validate(resolved resolve.ValueSet, checkoutEnabled bool) Result {
	res := Result{
		Errors:   make(map[string][]string),
		Warnings: make(map[string][]string),
	}

	for _, spec := range v.registry.All() {
		value, present := resolved[spec.Name]
		empty := !present || resolve.IsEmpty(value)

		switch spec.Requirement {
		case feedspec.Required:
			if empty {
				res.addError(spec.Name, "required attribute is missing")
			}
		case feedspec.Conditional:
			v.checkCondition(&spec, empty, resolved, checkoutEnabled, &res)
		case feedspec.Recommended:
			if empty {
				res.addWarning(spec.Name, "recommended attribute is empty")
			}
		}

		if empty {
			continue
		}
		for _, rule := range spec.Rules {
			errMsg, warnMsg := evalRule(rule, value, resolved)
			if errMsg != "" {
				res.addError(spec.Name, errMsg)
			}
			if warnMsg != "" {
				res.addWarning(spec.Name, warnMsg)
			}
		}
	}

	res.Valid = len(res.Errors) == 0
	return res
}

func (v *Validator) checkCondition(
	spec *feedspec.FieldSpecification,
	empty bool,
	resolved resolve.ValueSet,
	checkoutEnabled bool,
	res *Result,
) {
	switch spec.Condition {
	case feedspec.CondCheckoutRequired:
		if checkoutEnabled && empty {
			res.addError(spec.Name, "required when checkout is enabled")
		}
	case feedspec.CondGTINPresent:
		if resolved.Has("gtin") && empty {
			res.addError(spec.Name, "required when gtin is present")
		}
	case feedspec.CondPreorderOnly:
		availability := resolved.GetString("availability")
		if !empty && availability != "preorder" {
			res.addError(spec.Name, "must be empty unless availability is preorder")
		}
		if empty && availability == "preorder" {
			res.addError(spec.Name, "required when availability is preorder")
		}
	default:
		if spec.Condition != "" {
			res.addError(spec.Name, fmt.Sprintf("unrecognized condition %s", spec.Condition))
		}
	}
}

func (r *Result) addError(attr, msg string) {
	r.Errors[attr] = append(r.Errors[attr], msg)
}

func (r *Result) addWarning(attr, msg string) {
	r.Warnings[attr] = append(r.Warnings[attr], msg)
}
