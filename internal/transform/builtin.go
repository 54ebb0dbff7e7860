package transform

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"shopfeed/internal/extract"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// stripHTML removes markup and collapses whitespace, leaving plain text.
func stripHTML(value any, _ map[string]any, _ *extract.ShopContext) (any, error) {
	s, ok := asString(value)
	if !ok {
		return nil, nil
	}
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return nil, nil
	}
	return s, nil
}

// priceWithCurrency formats a numeric amount with the shop currency code,
// e.g. 79.99 -> "79.99 USD".
func priceWithCurrency(value any, _ map[string]any, shop *extract.ShopContext) (any, error) {
	amt, ok := asFloat(value)
	if !ok {
		return nil, nil
	}
	if shop == nil || shop.Currency == "" {
		return nil, fmt.Errorf("shop currency is not configured")
	}
	return fmt.Sprintf("%.2f %s", amt, shop.Currency), nil
}

// weightWithUnit formats a weight with the shop weight unit, e.g. "1.5 kg".
func weightWithUnit(value any, _ map[string]any, shop *extract.ShopContext) (any, error) {
	w, ok := asFloat(value)
	if !ok {
		return nil, nil
	}
	if shop == nil || shop.WeightUnit == "" {
		return nil, fmt.Errorf("shop weight unit is not configured")
	}
	return fmt.Sprintf("%s %s", formatNumber(w), shop.WeightUnit), nil
}

// dimensionWithUnit formats a single dimension with the shop dimension unit.
func dimensionWithUnit(value any, _ map[string]any, shop *extract.ShopContext) (any, error) {
	d, ok := asFloat(value)
	if !ok {
		return nil, nil
	}
	if shop == nil || shop.DimensionUnit == "" {
		return nil, fmt.Errorf("shop dimension unit is not configured")
	}
	return fmt.Sprintf("%s %s", formatNumber(d), shop.DimensionUnit), nil
}

// packageDimensions builds "LxWxH unit" from the record's dimensions object.
// All three dimensions must be present and positive; a missing or zero
// dimension yields empty rather than a partial string.
func packageDimensions(_ any, record map[string]any, shop *extract.ShopContext) (any, error) {
	dims, ok := record["dimensions"].(map[string]any)
	if !ok {
		return nil, nil
	}
	length, lok := asFloat(dims["length"])
	width, wok := asFloat(dims["width"])
	height, hok := asFloat(dims["height"])
	if !lok || !wok || !hok || length <= 0 || width <= 0 || height <= 0 {
		return nil, nil
	}
	if shop == nil || shop.DimensionUnit == "" {
		return nil, fmt.Errorf("shop dimension unit is not configured")
	}
	return fmt.Sprintf("%sx%sx%s %s",
		formatNumber(length), formatNumber(width), formatNumber(height), shop.DimensionUnit), nil
}

// categoryPath joins a collection list into a hierarchical " > " path.
func categoryPath(value any, _ map[string]any, _ *extract.ShopContext) (any, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, nil
	}
	var names []string
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if v != "" {
				names = append(names, v)
			}
		case map[string]any:
			if title, ok := asString(v["title"]); ok {
				names = append(names, title)
			} else if name, ok := asString(v["name"]); ok {
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return nil, nil
	}
	return strings.Join(names, " > "), nil
}

const maxAdditionalImages = 10

// additionalImages collapses the record's image array into the additional
// image list: the first image is the main image and is skipped, the rest are
// capped at ten entries.
func additionalImages(value any, _ map[string]any, _ *extract.ShopContext) (any, error) {
	items, ok := value.([]any)
	if !ok || len(items) < 2 {
		return nil, nil
	}
	var urls []string
	for _, item := range items[1:] {
		if len(urls) == maxAdditionalImages {
			break
		}
		switch v := item.(type) {
		case string:
			if v != "" {
				urls = append(urls, v)
			}
		case map[string]any:
			if src, ok := asString(v["src"]); ok {
				urls = append(urls, src)
			}
		}
	}
	if len(urls) == 0 {
		return nil, nil
	}
	return urls, nil
}

// titleCase capitalizes each word. A fresh caser per call: cases.Caser is
// stateful and must not be shared between goroutines.
func titleCase(value any, _ map[string]any, _ *extract.ShopContext) (any, error) {
	s, ok := asString(value)
	if !ok {
		return nil, nil
	}
	return cases.Title(language.English).String(strings.ToLower(s)), nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// dateISO8601 normalizes a date string to YYYY-MM-DD.
func dateISO8601(value any, _ map[string]any, _ *extract.ShopContext) (any, error) {
	s, ok := asString(value)
	if !ok {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", s)
}

// availabilityStatus maps inventory state onto the feed availability enum.
func availabilityStatus(value any, _ map[string]any, _ *extract.ShopContext) (any, error) {
	switch v := value.(type) {
	case bool:
		if v {
			return "in_stock", nil
		}
		return "out_of_stock", nil
	case string:
		switch v {
		case "in_stock", "out_of_stock", "preorder", "backorder":
			return v, nil
		}
		return nil, fmt.Errorf("unrecognized availability %q", v)
	}
	if qty, ok := asFloat(value); ok {
		if qty > 0 {
			return "in_stock", nil
		}
		return "out_of_stock", nil
	}
	return nil, nil
}

// defaultCondition supplies "new" when the source carries no condition.
// Runs even on empty input.
func defaultCondition(value any, _ map[string]any, _ *extract.ShopContext) (any, error) {
	s, ok := asString(value)
	if !ok {
		return "new", nil
	}
	return strings.ToLower(s), nil
}

// defaultInventory supplies "0" when the source carries no inventory count.
// Runs even on empty input.
func defaultInventory(value any, _ map[string]any, _ *extract.ShopContext) (any, error) {
	if value == nil {
		return "0", nil
	}
	if qty, ok := asFloat(value); ok {
		if qty < 0 {
			qty = 0
		}
		return strconv.Itoa(int(qty)), nil
	}
	if s, ok := asString(value); ok {
		return s, nil
	}
	return "0", nil
}

func asString(value any) (string, bool) {
	s, ok := value.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// formatNumber trims insignificant zeros: 10 -> "10", 1.5 -> "1.5".
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
