package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"shopfeed/internal/feedspec"
	"shopfeed/internal/resolve"
)

var (
	markupPattern   = regexp.MustCompile(`<[a-zA-Z/!][^>]*>`)
	currencyPattern = regexp.MustCompile(`^[0-9]+(?:\.[0-9]{1,2})? [A-Z]{3}$`)
	digitsPattern   = regexp.MustCompile(`^[0-9]+$`)
)

// evalRule runs one rule descriptor against one resolved value. Each rule
// reports at most one error string; the all-caps style check reports a
// non-blocking warning instead.
func evalRule(rule feedspec.Rule, value any, resolved resolve.ValueSet) (errMsg, warnMsg string) {
	switch rule.Kind {
	case feedspec.RuleMaxLength:
		for _, s := range stringValues(value) {
			if n := len([]rune(s)); n > rule.Max {
				return fmt.Sprintf("must be at most %d characters, got %d", rule.Max, n), ""
			}
		}

	case feedspec.RuleEnum:
		for _, s := range stringValues(value) {
			if !contains(rule.Enum, s) {
				return fmt.Sprintf("must be one of %s", strings.Join(rule.Enum, ", ")), ""
			}
		}

	case feedspec.RuleURL:
		for _, s := range stringValues(value) {
			u, err := url.Parse(s)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return "must be a valid http(s) URL", ""
			}
		}

	case feedspec.RulePositive:
		if f, ok := leadingNumber(value); ok && f <= 0 {
			return "must be a positive number", ""
		}

	case feedspec.RuleNonNegative:
		if f, ok := leadingNumber(value); ok && f < 0 {
			return "must not be negative", ""
		}

	case feedspec.RuleDigits:
		for _, s := range stringValues(value) {
			if !digitsPattern.MatchString(s) || !containsInt(rule.Digits, len(s)) {
				return fmt.Sprintf("must be a %s digit identifier", joinInts(rule.Digits)), ""
			}
		}

	case feedspec.RuleNoWhitespace:
		for _, s := range stringValues(value) {
			if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
				return "must not contain whitespace", ""
			}
		}

	case feedspec.RuleAllCaps:
		for _, s := range stringValues(value) {
			if hasLetter(s) && s == strings.ToUpper(s) && s != strings.ToLower(s) {
				return "", "appears to be written in all capital letters"
			}
		}

	case feedspec.RulePlainText:
		for _, s := range stringValues(value) {
			if markupPattern.MatchString(s) {
				return "must be plain text without embedded markup", ""
			}
		}

	case feedspec.RuleCurrencyAmount:
		for _, s := range stringValues(value) {
			if !currencyPattern.MatchString(s) {
				return "must be an amount followed by an ISO 4217 currency code, e.g. 79.99 USD", ""
			}
		}

	case feedspec.RuleDateFormat:
		for _, s := range stringValues(value) {
			if _, err := parseDate(s); err != nil {
				return "must be an ISO 8601 date", ""
			}
		}

	case feedspec.RuleFutureDate:
		for _, s := range stringValues(value) {
			t, err := parseDate(s)
			if err == nil && !t.After(time.Now()) {
				return "must be a date in the future", ""
			}
		}

	case feedspec.RuleRange:
		if f, ok := leadingNumber(value); ok && (f < rule.MinF || f > rule.MaxF) {
			return fmt.Sprintf("must be between %g and %g", rule.MinF, rule.MaxF), ""
		}

	case feedspec.RuleSalePriceBelow:
		// Cross-price comparison is deliberately not evaluated; the
		// comparison semantics are pending a product decision.
		_ = resolved
	}

	return "", ""
}

// stringValues flattens a resolved value into the strings a rule inspects.
func stringValues(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// leadingNumber parses the numeric part of a value, tolerating a trailing
// unit or currency code ("79.99 USD", "1.5 kg").
func leadingNumber(value any) (float64, bool) {
	ss := stringValues(value)
	if len(ss) == 0 {
		return 0, false
	}
	fields := strings.Fields(ss[0])
	if len(fields) == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func containsInt(set []int, n int) bool {
	for _, v := range set {
		if v == n {
			return true
		}
	}
	return false
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, unicode.IsLetter) >= 0
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
