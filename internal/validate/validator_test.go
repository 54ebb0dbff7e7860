package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfeed/internal/feedspec"
	"shopfeed/internal/feedspec/seed"
	"shopfeed/internal/resolve"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	registry, err := feedspec.NewRegistry(seed.GenerateFeedAttributes())
	require.NoError(t, err)
	return New(registry)
}

// completeSet returns a resolved value set that passes validation for a
// checkout-enabled shop.
func completeSet() resolve.ValueSet {
	return resolve.ValueSet{
		"id":           "sku-1",
		"title":        "Trail Running Shoe",
		"description":  "Lightweight shoe for technical trails.",
		"link":         "https://demo.example.com/products/trail-shoe",
		"image_link":   "https://demo.example.com/img/trail-shoe.jpg",
		"availability": "in_stock",
		"price":        "89.90 EUR",
		"gtin":         "4006381333931",
		"brand":        "Demo Sports",
		"tax_category": "standard",
		"condition":    "new",
		"is_bundle":    "no",
		"adult":        "no",
	}
}

func TestValidate_CompleteSetIsValid(t *testing.T) {
	v := newTestValidator(t)

	res := v.Validate(completeSet(), true)
	assert.True(t, res.Valid, "unexpected errors: %v", res.Errors)
	assert.Empty(t, res.Errors)
}

func TestValidate_MissingRequiredAttributes(t *testing.T) {
	v := newTestValidator(t)

	set := completeSet()
	delete(set, "title")
	delete(set, "price")

	res := v.Validate(set, true)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "title")
	assert.Contains(t, res.Errors, "price")
}

func TestValidate_NeverShortCircuits(t *testing.T) {
	v := newTestValidator(t)

	// An almost empty set must report every missing required attribute at
	// once, not stop at the first.
	res := v.Validate(resolve.ValueSet{}, false)
	assert.False(t, res.Valid)
	for _, name := range []string{"id", "title", "description", "link", "image_link", "availability", "price"} {
		assert.Contains(t, res.Errors, name)
	}
}

func TestValidate_CheckoutCondition(t *testing.T) {
	v := newTestValidator(t)

	set := completeSet()
	delete(set, "gtin")
	delete(set, "brand") // brand is only required while a gtin is present
	delete(set, "tax_category")

	res := v.Validate(set, false)
	assert.True(t, res.Valid, "unexpected errors: %v", res.Errors)

	res = v.Validate(set, true)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "gtin")
	assert.Contains(t, res.Errors, "tax_category")
}

func TestValidate_GTINPresenceCondition(t *testing.T) {
	v := newTestValidator(t)

	set := completeSet()
	delete(set, "brand")

	res := v.Validate(set, true)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors, "brand")
}

func TestValidate_PreorderCondition(t *testing.T) {
	v := newTestValidator(t)

	// Date set while not on preorder.
	set := completeSet()
	set["availability_date"] = "2026-12-01"
	res := v.Validate(set, true)
	assert.Contains(t, res.Errors, "availability_date")

	// Preorder without a date.
	set = completeSet()
	set["availability"] = "preorder"
	res = v.Validate(set, true)
	assert.Contains(t, res.Errors, "availability_date")

	// Preorder with a date.
	set["availability_date"] = "2026-12-01"
	res = v.Validate(set, true)
	assert.NotContains(t, res.Errors, "availability_date")
}

func TestValidate_FormatRules(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name  string
		attr  string
		value any
	}{
		{"price without currency code", "price", "89.90"},
		{"price with lowercase code", "price", "89.90 eur"},
		{"malformed link", "link", "not a url"},
		{"gtin with letters", "gtin", "40063813339AB"},
		{"gtin with wrong length", "gtin", "123456"},
		{"availability outside enum", "availability", "sold_out"},
		{"condition outside enum", "condition", "broken"},
		{"markup in description", "description", "Nice <b>shoe</b>"},
		{"rating out of range", "product_rating", "7.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := completeSet()
			set[tt.attr] = tt.value
			res := v.Validate(set, true)
			assert.Contains(t, res.Errors, tt.attr)
		})
	}
}

func TestValidate_FillingRequiredAttributeClearsItsErrors(t *testing.T) {
	v := newTestValidator(t)

	set := completeSet()
	delete(set, "title")

	before := v.Validate(set, true)
	require.Contains(t, before.Errors, "title")

	set["title"] = "Trail Running Shoe"
	after := v.Validate(set, true)
	assert.NotContains(t, after.Errors, "title")
	assert.True(t, after.Valid)
}

func TestValidate_WarningsDoNotAffectValidity(t *testing.T) {
	v := newTestValidator(t)

	set := completeSet()
	set["title"] = "LOUD SHOUTING TITLE"

	res := v.Validate(set, true)
	assert.True(t, res.Valid)
	assert.Contains(t, res.Warnings, "title")
}

func TestValidate_RecommendedAttributesWarn(t *testing.T) {
	v := newTestValidator(t)

	res := v.Validate(completeSet(), true)
	assert.True(t, res.Valid)
	assert.NotEmpty(t, res.Warnings, "empty recommended attributes warn")
}

func TestValidate_ListValuesCheckedElementwise(t *testing.T) {
	v := newTestValidator(t)

	set := completeSet()
	set["additional_image_link"] = []string{
		"https://demo.example.com/img/a.jpg",
		"ftp://demo.example.com/img/b.jpg",
	}
	res := v.Validate(set, true)
	assert.Contains(t, res.Errors, "additional_image_link")
}

func TestValidate_SalePriceRuleIsInert(t *testing.T) {
	v := newTestValidator(t)

	// A sale price above the price is currently accepted; only the format
	// is checked.
	set := completeSet()
	set["sale_price"] = "120.00 EUR"
	res := v.Validate(set, true)
	assert.NotContains(t, res.Errors, "sale_price")
}
