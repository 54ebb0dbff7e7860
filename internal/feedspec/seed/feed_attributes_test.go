package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfeed/internal/extract"
	"shopfeed/internal/feedspec"
	"shopfeed/internal/transform"
)

func TestGenerateFeedAttributes_BuildsConsistentRegistry(t *testing.T) {
	registry, err := feedspec.NewRegistry(GenerateFeedAttributes())
	require.NoError(t, err, "seed table must not contain duplicates")

	// Every default and fallback path parses and every referenced transform
	// is registered. This is the same check the CLI runs at startup.
	err = registry.Check(extract.Checker{}, transform.NewRegistry())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, registry.Len(), 70)
}

func TestGenerateFeedAttributes_RequiredSet(t *testing.T) {
	registry, err := feedspec.NewRegistry(GenerateFeedAttributes())
	require.NoError(t, err)

	var names []string
	for _, spec := range registry.RequiredAttributes() {
		names = append(names, spec.Name)
	}
	assert.ElementsMatch(t,
		[]string{"id", "title", "description", "link", "image_link", "availability", "price"},
		names)
}

func TestGenerateFeedAttributes_LockedSet(t *testing.T) {
	registry, err := feedspec.NewRegistry(GenerateFeedAttributes())
	require.NoError(t, err)

	locked := registry.LockedAttributeSet()
	for _, name := range []string{"id", "link", "adult", "is_bundle", "currency", "seller_name"} {
		assert.True(t, locked[name], "%s must be locked", name)
	}
	assert.False(t, locked["title"])

	// link is the single locked attribute that still accepts a static value.
	link, err := registry.Get("link")
	require.NoError(t, err)
	assert.True(t, link.AllowStatic)

	id, err := registry.Get("id")
	require.NoError(t, err)
	assert.False(t, id.AllowStatic)
}

func TestGenerateFeedAttributes_ConditionalAttributes(t *testing.T) {
	registry, err := feedspec.NewRegistry(GenerateFeedAttributes())
	require.NoError(t, err)

	tests := map[string]feedspec.ConditionCode{
		"gtin":              feedspec.CondCheckoutRequired,
		"tax_category":      feedspec.CondCheckoutRequired,
		"brand":             feedspec.CondGTINPresent,
		"availability_date": feedspec.CondPreorderOnly,
	}
	for name, code := range tests {
		spec, err := registry.Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, feedspec.Conditional, spec.Requirement, name)
		assert.Equal(t, code, spec.Condition, name)
	}
}

func TestGenerateFeedAttributes_ShopLevelMappings(t *testing.T) {
	registry, err := feedspec.NewRegistry(GenerateFeedAttributes())
	require.NoError(t, err)

	for _, name := range []string{"currency", "seller_name", "shipping_label"} {
		spec, err := registry.Get(name)
		require.NoError(t, err, name)
		require.NotNil(t, spec.Default, name)
		assert.True(t, spec.Default.ShopLevel, name)
		assert.Empty(t, spec.Default.Transform,
			"%s is a literal passthrough of a shop setting", name)
	}
}

func TestGenerateFeedAttributes_DefaultSupplyingTransforms(t *testing.T) {
	registry, err := feedspec.NewRegistry(GenerateFeedAttributes())
	require.NoError(t, err)

	condition, err := registry.Get("condition")
	require.NoError(t, err)
	require.NotNil(t, condition.Default)
	assert.Equal(t, "default_condition", condition.Default.Transform)
}
