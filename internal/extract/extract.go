// Package extract reads values out of raw source documents and shop-context
// objects using dot-separated path expressions. Missing data is never an
// error here: traversal stops and reports "no value" as soon as a segment is
// absent, null, or out of range.
package extract

// ShopContext is the flat set of shop-level fields addressable through the
// reserved "shop." path prefix. It is owned by the surrounding application;
// the engine only reads it.
type ShopContext struct {
	Currency          string `json:"currency" db:"currency"`
	WeightUnit        string `json:"weight_unit" db:"weight_unit"`
	DimensionUnit     string `json:"dimension_unit" db:"dimension_unit"`
	SellerName        string `json:"seller_name" db:"seller_name"`
	ShippingLabel     string `json:"shipping_label" db:"shipping_label"`
	ReturnPolicyLabel string `json:"return_policy_label" db:"return_policy_label"`
	TransitTimeLabel  string `json:"transit_time_label" db:"transit_time_label"`
}

// Field looks up a shop-context field by its path name.
func (c *ShopContext) Field(name string) (string, bool) {
	if c == nil {
		return "", false
	}
	switch name {
	case "currency":
		return c.Currency, true
	case "weight_unit":
		return c.WeightUnit, true
	case "dimension_unit":
		return c.DimensionUnit, true
	case "seller_name":
		return c.SellerName, true
	case "shipping_label":
		return c.ShippingLabel, true
	case "return_policy_label":
		return c.ReturnPolicyLabel, true
	case "transit_time_label":
		return c.TransitTimeLabel, true
	}
	return "", false
}

// Extract walks the parsed path over the document, or over the shop context
// for shop-level paths. The second return is false whenever the path does
// not lead to a value; that is the normal "no value" outcome, not a failure.
func Extract(doc map[string]any, shop *ShopContext, path *Path) (any, bool) {
	if path == nil {
		return nil, false
	}

	if path.ShopLevel() {
		v, ok := shop.Field(path.shopField)
		if !ok || v == "" {
			return nil, false
		}
		return v, true
	}

	var cur any = doc
	for _, seg := range path.segments {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := obj[seg.key]
		if !ok || next == nil {
			return nil, false
		}
		if seg.hasIndex {
			arr, ok := next.([]any)
			if !ok || seg.index >= len(arr) {
				return nil, false
			}
			next = arr[seg.index]
			if next == nil {
				return nil, false
			}
		}
		cur = next
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// ExtractString is Extract narrowed to string-shaped results; non-string
// scalars are not coerced.
func ExtractString(doc map[string]any, shop *ShopContext, path *Path) (string, bool) {
	v, ok := Extract(doc, shop, path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
