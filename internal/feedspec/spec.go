package feedspec

// DataType tags the value shape an attribute carries in the feed.
type DataType string

const (
	TypeString  DataType = "STRING"
	TypeEnum    DataType = "ENUM"
	TypeURL     DataType = "URL"
	TypeInteger DataType = "INTEGER"
	TypeDecimal DataType = "DECIMAL"
	TypeDate    DataType = "DATE"
	TypeList    DataType = "LIST"
)

// Requirement is the requirement level of an attribute.
type Requirement string

const (
	Required    Requirement = "REQUIRED"
	Recommended Requirement = "RECOMMENDED"
	Optional    Requirement = "OPTIONAL"
	Conditional Requirement = "CONDITIONAL"
)

// ConditionCode identifies a dependency condition recognized by the validator.
// The free-form DependencyNote on the specification is documentation only;
// the code is what gets evaluated.
type ConditionCode string

const (
	// CondCheckoutRequired marks attributes that become required once the
	// shop has checkout enabled.
	CondCheckoutRequired ConditionCode = "CHECKOUT_REQUIRED"

	// CondGTINPresent marks attributes that become required when the
	// resolved set contains a gtin value.
	CondGTINPresent ConditionCode = "GTIN_PRESENT"

	// CondPreorderOnly marks attributes that must be empty unless the
	// resolved availability is "preorder", and required when it is.
	CondPreorderOnly ConditionCode = "PREORDER_ONLY"
)

// RuleKind identifies a validation rule family.
type RuleKind string

const (
	RuleMaxLength      RuleKind = "MAX_LENGTH"
	RuleEnum           RuleKind = "ENUM"
	RuleURL            RuleKind = "URL"
	RulePositive       RuleKind = "POSITIVE"
	RuleNonNegative    RuleKind = "NON_NEGATIVE"
	RuleDigits         RuleKind = "DIGITS"
	RuleNoWhitespace   RuleKind = "NO_WHITESPACE"
	RuleAllCaps        RuleKind = "ALL_CAPS"
	RulePlainText      RuleKind = "PLAIN_TEXT"
	RuleCurrencyAmount RuleKind = "CURRENCY_AMOUNT"
	RuleDateFormat     RuleKind = "DATE_FORMAT"
	RuleFutureDate     RuleKind = "FUTURE_DATE"
	RuleRange          RuleKind = "RANGE"
	RuleSalePriceBelow RuleKind = "SALE_PRICE_BELOW_PRICE"
)

// Rule is a validation rule descriptor attached to a specification. Each rule
// may report at most one error (or warning) string for a resolved value.
type Rule struct {
	Kind   RuleKind `json:"kind"`
	Max    int      `json:"max,omitempty"`    // RuleMaxLength
	Enum   []string `json:"enum,omitempty"`   // RuleEnum
	Digits []int    `json:"digits,omitempty"` // RuleDigits: accepted digit counts
	MinF   float64  `json:"min_f,omitempty"`  // RuleRange
	MaxF   float64  `json:"max_f,omitempty"`  // RuleRange
}

// Rule constructors keep the seed table terse.

func MaxLen(n int) Rule           { return Rule{Kind: RuleMaxLength, Max: n} }
func Enum(values ...string) Rule  { return Rule{Kind: RuleEnum, Enum: values} }
func WellFormedURL() Rule         { return Rule{Kind: RuleURL} }
func Positive() Rule              { return Rule{Kind: RulePositive} }
func NonNegative() Rule           { return Rule{Kind: RuleNonNegative} }
func Digits(counts ...int) Rule   { return Rule{Kind: RuleDigits, Digits: counts} }
func NoWhitespace() Rule          { return Rule{Kind: RuleNoWhitespace} }
func AllCapsWarning() Rule        { return Rule{Kind: RuleAllCaps} }
func PlainText() Rule             { return Rule{Kind: RulePlainText} }
func CurrencyAmount() Rule        { return Rule{Kind: RuleCurrencyAmount} }
func DateFormat() Rule            { return Rule{Kind: RuleDateFormat} }
func FutureDate() Rule            { return Rule{Kind: RuleFutureDate} }
func Range(min, max float64) Rule { return Rule{Kind: RuleRange, MinF: min, MaxF: max} }
func SalePriceBelowPrice() Rule   { return Rule{Kind: RuleSalePriceBelow} }

// DefaultMapping is the specification-level extraction mapping used when
// neither a product override nor a shop mapping applies.
type DefaultMapping struct {
	Path      string `json:"path"`
	Fallback  string `json:"fallback,omitempty"`
	Transform string `json:"transform,omitempty"`
	// ShopLevel marks the path as a literal passthrough of a shop-context
	// field; shop-level extractions never run a transform.
	ShopLevel bool `json:"shop_level,omitempty"`
}

// FieldSpecification describes one attribute of the output feed. Instances
// are immutable once the registry is built.
type FieldSpecification struct {
	Name           string          `json:"name"`
	Type           DataType        `json:"type"`
	Requirement    Requirement     `json:"requirement"`
	Condition      ConditionCode   `json:"condition,omitempty"`
	DependencyNote string          `json:"dependency_note,omitempty"`
	Rules          []Rule          `json:"rules,omitempty"`
	Default        *DefaultMapping `json:"default,omitempty"`

	// Locked forbids mapping overrides at both product and shop level.
	Locked bool `json:"locked,omitempty"`
	// AllowStatic permits a static literal override even when Locked.
	AllowStatic bool `json:"allow_static,omitempty"`
	// Enrichable marks the attribute as a candidate for the external
	// AI-enrichment collaborator. Carries no behavior here.
	Enrichable bool `json:"enrichable,omitempty"`
	// Category groups attributes for presentation only.
	Category string `json:"category,omitempty"`
}
