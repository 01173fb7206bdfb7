package xmlvalidate

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"
)

// Restrictions is the sparse facet set of a simple type. A nil field
// means the facet is unconstrained.
type Restrictions struct {
	MinInclusive   *string
	MaxInclusive   *string
	MinLength      *int
	MaxLength      *int
	Pattern        *string
	TotalDigits    *int
	FractionDigits *int
}

// Fixed lexical formats for the date/time base types.
const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05"
	dateTimeLayout = time.RFC3339
)

// CheckValue validates a textual value against the restrictions of a
// simple type, dispatching on its base type name. Checks accumulate:
// every violated constraint yields its own violation, except that a
// value that fails to parse cannot be range-checked and short-circuits
// the remaining facets.
func CheckValue(baseType, value string, r Restrictions) []Violation {
	switch baseType {
	case "integer", "int", "long", "short", "byte",
		"nonNegativeInteger", "positiveInteger", "negativeInteger":
		return CheckInteger(value, r)
	case "decimal", "float", "double":
		return CheckDecimal(value, r)
	case "boolean":
		return CheckBoolean(value, r)
	case "date":
		return CheckDate(value, r)
	case "time":
		return CheckTime(value, r)
	case "dateTime":
		return CheckDateTime(value, r)
	default:
		return CheckString(value, r)
	}
}

// CheckInteger requires a base-10 integer with no fractional part and
// applies the inclusive range facets.
func CheckInteger(value string, r Restrictions) []Violation {
	n, ok := new(big.Int).SetString(strings.TrimSpace(value), 10)
	if !ok {
		return []Violation{facetViolation("datatype-integer",
			fmt.Sprintf("value '%s' is not an integer", value), "", value)}
	}

	var violations []Violation
	if r.MinInclusive != nil {
		if bound, ok := new(big.Int).SetString(*r.MinInclusive, 10); ok && n.Cmp(bound) < 0 {
			violations = append(violations, facetViolation("facet-minInclusive",
				fmt.Sprintf("value must be >= %s, got %s", *r.MinInclusive, value),
				*r.MinInclusive, value))
		}
	}
	if r.MaxInclusive != nil {
		if bound, ok := new(big.Int).SetString(*r.MaxInclusive, 10); ok && n.Cmp(bound) > 0 {
			violations = append(violations, facetViolation("facet-maxInclusive",
				fmt.Sprintf("value must be <= %s, got %s", *r.MaxInclusive, value),
				*r.MaxInclusive, value))
		}
	}
	return violations
}

// CheckDecimal requires a real number. totalDigits bounds the
// significant digits of the textual form, fractionDigits the digits
// after the decimal point; each violated bound is its own violation.
func CheckDecimal(value string, r Restrictions) []Violation {
	trimmed := strings.TrimSpace(value)
	n, ok := new(big.Float).SetString(trimmed)
	if !ok {
		return []Violation{facetViolation("datatype-decimal",
			fmt.Sprintf("value '%s' is not a decimal", value), "", value)}
	}

	var violations []Violation
	if r.TotalDigits != nil {
		if got := significantDigits(trimmed); got > *r.TotalDigits {
			violations = append(violations, facetViolation("facet-totalDigits",
				fmt.Sprintf("total digits must be at most %d, got %d", *r.TotalDigits, got),
				fmt.Sprintf("%d", *r.TotalDigits), value))
		}
	}
	if r.FractionDigits != nil {
		if got := fractionDigits(trimmed); got > *r.FractionDigits {
			violations = append(violations, facetViolation("facet-fractionDigits",
				fmt.Sprintf("fraction digits must be at most %d, got %d", *r.FractionDigits, got),
				fmt.Sprintf("%d", *r.FractionDigits), value))
		}
	}
	if r.MinInclusive != nil {
		if bound, ok := new(big.Float).SetString(*r.MinInclusive); ok && n.Cmp(bound) < 0 {
			violations = append(violations, facetViolation("facet-minInclusive",
				fmt.Sprintf("value must be >= %s, got %s", *r.MinInclusive, value),
				*r.MinInclusive, value))
		}
	}
	if r.MaxInclusive != nil {
		if bound, ok := new(big.Float).SetString(*r.MaxInclusive); ok && n.Cmp(bound) > 0 {
			violations = append(violations, facetViolation("facet-maxInclusive",
				fmt.Sprintf("value must be <= %s, got %s", *r.MaxInclusive, value),
				*r.MaxInclusive, value))
		}
	}
	return violations
}

// CheckBoolean accepts exactly the literals "true" and "false".
func CheckBoolean(value string, _ Restrictions) []Violation {
	if value != "true" && value != "false" {
		return []Violation{facetViolation("datatype-boolean",
			fmt.Sprintf("value '%s' is not a boolean", value), "true|false", value)}
	}
	return nil
}

// CheckString applies length bounds and the pattern facet. All unmet
// constraints are reported, not just the first.
func CheckString(value string, r Restrictions) []Violation {
	var violations []Violation
	length := len([]rune(value))
	if r.MinLength != nil && length < *r.MinLength {
		violations = append(violations, facetViolation("facet-minLength",
			fmt.Sprintf("length must be at least %d, got %d", *r.MinLength, length),
			fmt.Sprintf("%d", *r.MinLength), value))
	}
	if r.MaxLength != nil && length > *r.MaxLength {
		violations = append(violations, facetViolation("facet-maxLength",
			fmt.Sprintf("length must be at most %d, got %d", *r.MaxLength, length),
			fmt.Sprintf("%d", *r.MaxLength), value))
	}
	if v := checkPattern(value, r); v != nil {
		violations = append(violations, *v)
	}
	return violations
}

// CheckDate validates the fixed yyyy-MM-dd format and the inclusive
// range facets. An unparseable date cannot be range-checked.
func CheckDate(value string, r Restrictions) []Violation {
	return checkTemporal(value, r, dateLayout, "date")
}

// CheckTime validates the fixed HH:mm:ss format plus range facets.
func CheckTime(value string, r Restrictions) []Violation {
	return checkTemporal(value, r, timeLayout, "time")
}

// CheckDateTime validates ISO-8601 timestamps plus range facets. A
// timestamp without a zone offset is accepted as well.
func CheckDateTime(value string, r Restrictions) []Violation {
	if _, err := time.Parse(dateTimeLayout, value); err != nil {
		// Retry without zone designator before failing.
		if _, err := time.Parse("2006-01-02T15:04:05", value); err != nil {
			return []Violation{facetViolation("datatype-dateTime",
				fmt.Sprintf("invalid dateTime format: %s", value), dateTimeLayout, value)}
		}
		return checkTemporal(value, r, "2006-01-02T15:04:05", "dateTime")
	}
	return checkTemporal(value, r, dateTimeLayout, "dateTime")
}

func checkTemporal(value string, r Restrictions, layout, kind string) []Violation {
	parsed, err := time.Parse(layout, value)
	if err != nil {
		return []Violation{facetViolation("datatype-"+kind,
			fmt.Sprintf("invalid %s format: %s", kind, value), layout, value)}
	}

	var violations []Violation
	if r.MinInclusive != nil {
		if bound, err := time.Parse(layout, *r.MinInclusive); err == nil && parsed.Before(bound) {
			violations = append(violations, facetViolation("facet-minInclusive",
				fmt.Sprintf("value must not be before %s, got %s", *r.MinInclusive, value),
				*r.MinInclusive, value))
		}
	}
	if r.MaxInclusive != nil {
		if bound, err := time.Parse(layout, *r.MaxInclusive); err == nil && parsed.After(bound) {
			violations = append(violations, facetViolation("facet-maxInclusive",
				fmt.Sprintf("value must not be after %s, got %s", *r.MaxInclusive, value),
				*r.MaxInclusive, value))
		}
	}
	if v := checkPattern(value, r); v != nil {
		violations = append(violations, *v)
	}
	return violations
}

// checkPattern matches the pattern facet against the entire value.
// Patterns are anchored, matching XSD semantics.
func checkPattern(value string, r Restrictions) *Violation {
	if r.Pattern == nil {
		return nil
	}
	re, err := regexp.Compile("^(?:" + *r.Pattern + ")$")
	if err != nil {
		v := facetViolation("facet-pattern",
			fmt.Sprintf("invalid pattern '%s': %v", *r.Pattern, err), *r.Pattern, value)
		return &v
	}
	if !re.MatchString(value) {
		v := facetViolation("facet-pattern",
			fmt.Sprintf("value '%s' does not match pattern '%s'", value, *r.Pattern),
			*r.Pattern, value)
		return &v
	}
	return nil
}

// significantDigits counts digits ignoring sign, decimal point and
// leading zeros.
func significantDigits(value string) int {
	digits := strings.TrimLeft(value, "+-")
	digits = strings.Replace(digits, ".", "", 1)
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return 1
	}
	return len(digits)
}

func fractionDigits(value string) int {
	if idx := strings.IndexByte(value, '.'); idx >= 0 {
		return len(value) - idx - 1
	}
	return 0
}

func facetViolation(code, message, expected, actual string) Violation {
	return Violation{
		Code:     code,
		Severity: SeverityError,
		Category: CategoryDataType,
		Message:  message,
		Expected: expected,
		Actual:   actual,
	}
}
