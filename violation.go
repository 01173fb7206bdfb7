package xmlvalidate

// Severity represents the severity level of a violation
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Category identifies the rule family a violation belongs to
type Category string

const (
	CategorySchema   Category = "schemaValidationError"
	CategoryCustom   Category = "customValidationError"
	CategoryOrder    Category = "elementOrderError"
	CategoryDataType Category = "dataTypeValidationError"
)

// Location points at the place in the source document a violation was
// found. Zero values mean the field is unknown.
type Location struct {
	Element string `json:"element,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	File    string `json:"file,omitempty"`
}

// Violation describes a single rule failure. It is constructed once by a
// validator and never mutated afterwards.
type Violation struct {
	Code     string            `json:"code"`
	Severity Severity          `json:"severity"`
	Category Category          `json:"category"`
	Message  string            `json:"message"`
	Location Location          `json:"location"`
	Expected string            `json:"expected,omitempty"`
	Actual   string            `json:"actual,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}

// Validation class names as they appear in an Outcome.
const (
	ClassStructural = "structural"
	ClassCustom     = "custom"
	ClassOrder      = "order"
)

// ClassResult holds the outcome of one validation class.
type ClassResult struct {
	Name       string      `json:"name"`
	Passed     bool        `json:"passed"`
	Violations []Violation `json:"violations,omitempty"`
}

// Outcome is the unified result of a validation run, one record per
// class in execution order.
type Outcome struct {
	Classes []ClassResult `json:"classes"`
}

// Passed reports whether every validation class passed.
func (o Outcome) Passed() bool {
	for _, c := range o.Classes {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Violations returns all violations across classes, in class order.
func (o Outcome) Violations() []Violation {
	var all []Violation
	for _, c := range o.Classes {
		all = append(all, c.Violations...)
	}
	return all
}

// Class returns the result for a named class, if present.
func (o Outcome) Class(name string) (ClassResult, bool) {
	for _, c := range o.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return ClassResult{}, false
}
