package seed

import (
	"shopfeed/internal/feedspec"
)

// GenerateFeedAttributes creates the full specification table for the
// product-feed output format: roughly seventy attributes covering basic
// product data, price and availability, identifiers, detailed description,
// campaign labels, destinations, shipping and tax.
//
// The table is the single source of defaults: requirement level, dependency
// condition, validation rules, lock flags and the default extraction mapping
// each attribute uses when neither a product override nor a shop mapping
// applies.
func GenerateFeedAttributes() []feedspec.FieldSpecification {
	return []feedspec.FieldSpecification{
		// =====================================================================
		// BASIC PRODUCT DATA
		// =====================================================================
		{
			Name:        "id",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Required,
			Rules:       []feedspec.Rule{feedspec.MaxLen(50), feedspec.NoWhitespace()},
			Default:     &feedspec.DefaultMapping{Path: "id"},
			Locked:      true,
			Category:    "basic",
		},
		{
			Name:        "title",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Required,
			Rules: []feedspec.Rule{
				feedspec.MaxLen(150), feedspec.PlainText(), feedspec.AllCapsWarning(),
			},
			Default:    &feedspec.DefaultMapping{Path: "title", Fallback: "handle"},
			Enrichable: true,
			Category:   "basic",
		},
		{
			Name:        "description",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Required,
			Rules:       []feedspec.Rule{feedspec.MaxLen(5000), feedspec.PlainText()},
			Default:     &feedspec.DefaultMapping{Path: "body_html", Transform: "strip_html"},
			Enrichable:  true,
			Category:    "basic",
		},
		{
			Name:        "link",
			Type:        feedspec.TypeURL,
			Requirement: feedspec.Required,
			Rules:       []feedspec.Rule{feedspec.WellFormedURL()},
			Default:     &feedspec.DefaultMapping{Path: "url"},
			Locked:      true,
			AllowStatic: true,
			Category:    "basic",
		},
		{
			Name:        "image_link",
			Type:        feedspec.TypeURL,
			Requirement: feedspec.Required,
			Rules:       []feedspec.Rule{feedspec.WellFormedURL()},
			Default:     &feedspec.DefaultMapping{Path: "image.src", Fallback: "images[0].src"},
			Category:    "basic",
		},
		{
			Name:        "additional_image_link",
			Type:        feedspec.TypeList,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.WellFormedURL()},
			Default:     &feedspec.DefaultMapping{Path: "images", Transform: "additional_images"},
			Category:    "basic",
		},
		{
			Name:        "mobile_link",
			Type:        feedspec.TypeURL,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.WellFormedURL()},
			Category:    "basic",
		},
		{
			Name:        "canonical_link",
			Type:        feedspec.TypeURL,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.WellFormedURL()},
			Category:    "basic",
		},
		{
			Name:        "lifestyle_image_link",
			Type:        feedspec.TypeURL,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.WellFormedURL()},
			Category:    "basic",
		},
		{
			Name:        "short_title",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules: []feedspec.Rule{
				feedspec.MaxLen(65), feedspec.PlainText(), feedspec.AllCapsWarning(),
			},
			Enrichable: true,
			Category:   "basic",
		},

		// =====================================================================
		// PRICE & AVAILABILITY
		// =====================================================================
		{
			Name:        "availability",
			Type:        feedspec.TypeEnum,
			Requirement: feedspec.Required,
			Rules: []feedspec.Rule{
				feedspec.Enum("in_stock", "out_of_stock", "preorder", "backorder"),
			},
			Default: &feedspec.DefaultMapping{
				Path:      "variants[0].inventory_quantity",
				Transform: "availability_status",
			},
			Category: "price_availability",
		},
		{
			Name:           "availability_date",
			Type:           feedspec.TypeDate,
			Requirement:    feedspec.Conditional,
			Condition:      feedspec.CondPreorderOnly,
			DependencyNote: "must be empty unless availability is preorder",
			Rules:          []feedspec.Rule{feedspec.DateFormat()},
			Category:       "price_availability",
		},
		{
			Name:        "expiration_date",
			Type:        feedspec.TypeDate,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.DateFormat(), feedspec.FutureDate()},
			Category:    "price_availability",
		},
		{
			Name:        "price",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Required,
			Rules:       []feedspec.Rule{feedspec.CurrencyAmount(), feedspec.Positive()},
			Default: &feedspec.DefaultMapping{
				Path:      "variants[0].price",
				Transform: "price_with_currency",
			},
			Category: "price_availability",
		},
		{
			Name:        "sale_price",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules: []feedspec.Rule{
				feedspec.CurrencyAmount(), feedspec.Positive(), feedspec.SalePriceBelowPrice(),
			},
			Category: "price_availability",
		},
		{
			Name:        "sale_price_effective_date",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Category:    "price_availability",
		},
		{
			Name:        "cost_of_goods_sold",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.CurrencyAmount()},
			Category:    "price_availability",
		},
		{
			Name:        "unit_pricing_measure",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Default: &feedspec.DefaultMapping{
				Path:      "variants[0].weight",
				Transform: "weight_with_unit",
			},
			Category: "price_availability",
		},
		{
			Name:        "unit_pricing_base_measure",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Category:    "price_availability",
		},
		{
			Name:        "installment",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Category:    "price_availability",
		},
		{
			Name:        "subscription_cost",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Category:    "price_availability",
		},
		{
			Name:        "loyalty_points",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Category:    "price_availability",
		},
		{
			Name:        "sell_on_google_quantity",
			Type:        feedspec.TypeInteger,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.NonNegative()},
			Default: &feedspec.DefaultMapping{
				Path:      "variants[0].inventory_quantity",
				Transform: "default_inventory",
			},
			Category: "price_availability",
		},

		// =====================================================================
		// PRODUCT IDENTIFIERS
		// =====================================================================
		{
			Name:           "brand",
			Type:           feedspec.TypeString,
			Requirement:    feedspec.Conditional,
			Condition:      feedspec.CondGTINPresent,
			DependencyNote: "required when a gtin is present",
			Rules:          []feedspec.Rule{feedspec.MaxLen(70)},
			Default:        &feedspec.DefaultMapping{Path: "brands[0].name", Fallback: "vendor"},
			Category:       "identifiers",
		},
		{
			Name:           "gtin",
			Type:           feedspec.TypeString,
			Requirement:    feedspec.Conditional,
			Condition:      feedspec.CondCheckoutRequired,
			DependencyNote: "required when checkout is enabled",
			Rules: []feedspec.Rule{
				feedspec.Digits(8, 12, 13, 14), feedspec.NoWhitespace(),
			},
			Default:  &feedspec.DefaultMapping{Path: "variants[0].barcode"},
			Category: "identifiers",
		},
		{
			Name:        "mpn",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Recommended,
			Rules:       []feedspec.Rule{feedspec.MaxLen(70), feedspec.NoWhitespace()},
			Default:     &feedspec.DefaultMapping{Path: "variants[0].sku"},
			Category:    "identifiers",
		},
		{
			Name:        "identifier_exists",
			Type:        feedspec.TypeEnum,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.Enum("yes", "no")},
			Category:    "identifiers",
		},
		{
			Name:        "item_group_id",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.MaxLen(50), feedspec.NoWhitespace()},
			Default:     &feedspec.DefaultMapping{Path: "id"},
			Category:    "identifiers",
		},

		// =====================================================================
		// CATEGORIZATION
		// =====================================================================
		{
			Name:        "google_product_category",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Recommended,
			Rules:       []feedspec.Rule{feedspec.MaxLen(750)},
			Enrichable:  true,
			Category:    "categorization",
		},
		{
			Name:        "product_type",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Recommended,
			Rules:       []feedspec.Rule{feedspec.MaxLen(750)},
			Default:     &feedspec.DefaultMapping{Path: "collections", Transform: "category_path"},
			Category:    "categorization",
		},

		// =====================================================================
		// DETAILED PRODUCT DESCRIPTION
		// =====================================================================
		{
			Name:        "condition",
			Type:        feedspec.TypeEnum,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.Enum("new", "refurbished", "used")},
			Default:     &feedspec.DefaultMapping{Path: "condition", Transform: "default_condition"},
			Category:    "detailed",
		},
		{
			Name:           "adult",
			Type:           feedspec.TypeEnum,
			Requirement:    feedspec.Optional,
			DependencyNote: "driven solely by the product adult flag; accepts no override",
			Rules:          []feedspec.Rule{feedspec.Enum("yes", "no")},
			Locked:         true,
			Category:       "detailed",
		},
		{
			Name:        "multipack",
			Type:        feedspec.TypeInteger,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.NonNegative()},
			Category:    "detailed",
		},
		{
			Name:           "is_bundle",
			Type:           feedspec.TypeEnum,
			Requirement:    feedspec.Optional,
			DependencyNote: "bundle support is not yet available; always resolves to no",
			Rules:          []feedspec.Rule{feedspec.Enum("yes", "no")},
			Locked:         true,
			Category:       "detailed",
		},
		{
			Name:        "age_group",
			Type:        feedspec.TypeEnum,
			Requirement: feedspec.Optional,
			Rules: []feedspec.Rule{
				feedspec.Enum("newborn", "infant", "toddler", "kids", "adult"),
			},
			Category: "detailed",
		},
		{
			Name:        "color",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Recommended,
			Rules:       []feedspec.Rule{feedspec.MaxLen(100), feedspec.PlainText()},
			Category:    "detailed",
		},
		{
			Name:        "gender",
			Type:        feedspec.TypeEnum,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.Enum("male", "female", "unisex")},
			Category:    "detailed",
		},
		{
			Name:        "material",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.MaxLen(200)},
			Category:    "detailed",
		},
		{
			Name:        "pattern",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.MaxLen(100)},
			Category:    "detailed",
		},
		{
			Name:        "size",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Recommended,
			Rules:       []feedspec.Rule{feedspec.MaxLen(100)},
			Default:     &feedspec.DefaultMapping{Path: "variants[0].option1"},
			Category:    "detailed",
		},
		{
			Name:        "size_type",
			Type:        feedspec.TypeEnum,
			Requirement: feedspec.Optional,
			Rules: []feedspec.Rule{
				feedspec.Enum("regular", "petite", "plus", "big_and_tall", "maternity"),
			},
			Category: "detailed",
		},
		{
			Name:        "size_system",
			Type:        feedspec.TypeEnum,
			Requirement: feedspec.Optional,
			Rules: []feedspec.Rule{
				feedspec.Enum("US", "UK", "EU", "AU", "BR", "CN", "DE", "FR", "IT", "JP", "MEX"),
			},
			Category: "detailed",
		},
		{
			Name:        "product_highlight",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.MaxLen(150), feedspec.PlainText()},
			Enrichable:  true,
			Category:    "detailed",
		},
		{
			Name:        "product_detail",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Category:    "detailed",
		},
		{
			Name:        "product_rating",
			Type:        feedspec.TypeDecimal,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.Range(0, 5)},
			Category:    "detailed",
		},
		{
			Name:        "energy_efficiency_class",
			Type:        feedspec.TypeEnum,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{energyClassEnum()},
			Category:    "detailed",
		},
		{
			Name:        "min_energy_efficiency_class",
			Type:        feedspec.TypeEnum,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{energyClassEnum()},
			Category:    "detailed",
		},
		{
			Name:        "max_energy_efficiency_class",
			Type:        feedspec.TypeEnum,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{energyClassEnum()},
			Category:    "detailed",
		},

		// =====================================================================
		// SHOPPING CAMPAIGNS
		// =====================================================================
		{
			Name:        "custom_label_0",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.MaxLen(100)},
			Category:    "campaigns",
		},
		{
			Name:        "custom_label_1",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.MaxLen(100)},
			Category:    "campaigns",
		},
		{
			Name:        "custom_label_2",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.MaxLen(100)},
			Category:    "campaigns",
		},
		{
			Name:        "custom_label_3",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.MaxLen(100)},
			Category:    "campaigns",
		},
		{
			Name:        "custom_label_4",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.MaxLen(100)},
			Category:    "campaigns",
		},
		{
			Name:        "promotion_id",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.MaxLen(50), feedspec.NoWhitespace()},
			Category:    "campaigns",
		},
		{
			Name:        "ads_redirect",
			Type:        feedspec.TypeURL,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.WellFormedURL()},
			Category:    "campaigns",
		},

		// =====================================================================
		// DESTINATIONS
		// =====================================================================
		{
			Name:        "excluded_destination",
			Type:        feedspec.TypeList,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{destinationEnum()},
			Category:    "destinations",
		},
		{
			Name:        "included_destination",
			Type:        feedspec.TypeList,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{destinationEnum()},
			Category:    "destinations",
		},
		{
			Name:        "shopping_ads_excluded_country",
			Type:        feedspec.TypeList,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.MaxLen(2)},
			Category:    "destinations",
		},
		{
			Name:        "pause",
			Type:        feedspec.TypeEnum,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.Enum("ads")},
			Category:    "destinations",
		},

		// =====================================================================
		// SHIPPING & TAX
		// =====================================================================
		{
			Name:        "shipping_label",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Default: &feedspec.DefaultMapping{
				Path: "shop.shipping_label", ShopLevel: true,
			},
			Category: "shipping",
		},
		{
			Name:        "shipping_weight",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.NonNegative()},
			Default: &feedspec.DefaultMapping{
				Path:      "variants[0].weight",
				Transform: "weight_with_unit",
			},
			Category: "shipping",
		},
		{
			Name:        "shipping_length",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.NonNegative()},
			Default: &feedspec.DefaultMapping{
				Path:      "dimensions.length",
				Transform: "dimension_with_unit",
			},
			Category: "shipping",
		},
		{
			Name:        "shipping_width",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.NonNegative()},
			Default: &feedspec.DefaultMapping{
				Path:      "dimensions.width",
				Transform: "dimension_with_unit",
			},
			Category: "shipping",
		},
		{
			Name:        "shipping_height",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.NonNegative()},
			Default: &feedspec.DefaultMapping{
				Path:      "dimensions.height",
				Transform: "dimension_with_unit",
			},
			Category: "shipping",
		},
		{
			Name:        "package_dimensions",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Default: &feedspec.DefaultMapping{
				Path:      "dimensions",
				Transform: "dimensions",
			},
			Category: "shipping",
		},
		{
			Name:        "transit_time_label",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Default: &feedspec.DefaultMapping{
				Path: "shop.transit_time_label", ShopLevel: true,
			},
			Category: "shipping",
		},
		{
			Name:        "max_handling_time",
			Type:        feedspec.TypeInteger,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.NonNegative()},
			Category:    "shipping",
		},
		{
			Name:        "min_handling_time",
			Type:        feedspec.TypeInteger,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.NonNegative()},
			Category:    "shipping",
		},
		{
			Name:        "return_policy_label",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Default: &feedspec.DefaultMapping{
				Path: "shop.return_policy_label", ShopLevel: true,
			},
			Category: "shipping",
		},
		{
			Name:           "tax_category",
			Type:           feedspec.TypeString,
			Requirement:    feedspec.Conditional,
			Condition:      feedspec.CondCheckoutRequired,
			DependencyNote: "required when checkout is enabled",
			Rules:          []feedspec.Rule{feedspec.MaxLen(100)},
			Category:       "tax",
		},

		// =====================================================================
		// SELLER
		// =====================================================================
		{
			Name:        "currency",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.MaxLen(3)},
			Default: &feedspec.DefaultMapping{
				Path: "shop.currency", ShopLevel: true,
			},
			Locked:   true,
			Category: "seller",
		},
		{
			Name:        "seller_name",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Default: &feedspec.DefaultMapping{
				Path: "shop.seller_name", ShopLevel: true,
			},
			Locked:   true,
			Category: "seller",
		},
		{
			Name:        "external_seller_id",
			Type:        feedspec.TypeString,
			Requirement: feedspec.Optional,
			Rules:       []feedspec.Rule{feedspec.NoWhitespace()},
			Category:    "seller",
		},
	}
}

func energyClassEnum() feedspec.Rule {
	return feedspec.Enum("A+++", "A++", "A+", "A", "B", "C", "D", "E", "F", "G")
}

func destinationEnum() feedspec.Rule {
	return feedspec.Enum("Shopping_ads", "Display_ads", "Free_listings", "Buy_on_Google")
}
