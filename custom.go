package xmlvalidate

import (
	"fmt"

	"github.com/agentflare-ai/go-xmldom"
)

// Rule is a single business rule evaluated independently of schema
// structure. Rules must not retain the root after Check returns.
type Rule interface {
	Name() string
	Check(root xmldom.Element) []Violation
}

// DefaultRules returns the baseline rule set.
func DefaultRules() []Rule {
	return []Rule{TitleLengthRule{Min: 10}}
}

// TitleLengthRule requires every element named "title" to have text
// content strictly longer than Min characters.
type TitleLengthRule struct {
	Min int
}

func (r TitleLengthRule) Name() string { return "title-length" }

func (r TitleLengthRule) Check(root xmldom.Element) []Violation {
	var violations []Violation
	walkElements(root, func(elem xmldom.Element) {
		if localName(elem) != "title" {
			return
		}
		text := elementText(elem)
		if len([]rune(text)) <= r.Min {
			violations = append(violations, Violation{
				Code:     "custom-title-length",
				Severity: SeverityError,
				Category: CategoryCustom,
				Message:  fmt.Sprintf("title length must be greater than %d characters", r.Min),
				Location: locationOf(elem, ""),
				Actual:   text,
			})
		}
	})
	return violations
}

// CustomValidator runs an ordered rule set over a document. Rules are
// isolated: one failing or panicking rule does not prevent the rest
// from running.
type CustomValidator struct {
	rules []Rule
	file  string
}

// NewCustomValidator creates a validator for the given rules. file is
// used for violation locations and may be empty.
func NewCustomValidator(file string, rules ...Rule) *CustomValidator {
	return &CustomValidator{rules: rules, file: file}
}

// Validate evaluates every rule against the document root.
func (v *CustomValidator) Validate(doc xmldom.Document) []Violation {
	if doc == nil {
		return nil
	}
	root := doc.DocumentElement()
	if root == nil {
		return nil
	}

	var violations []Violation
	for _, rule := range v.rules {
		vs := v.runRule(rule, root)
		for i := range vs {
			if vs[i].Location.File == "" {
				vs[i].Location.File = v.file
			}
		}
		violations = append(violations, vs...)
	}
	return violations
}

// runRule invokes one rule, converting a panic into a violation so the
// remaining rules still run.
func (v *CustomValidator) runRule(rule Rule, root xmldom.Element) (violations []Violation) {
	defer func() {
		if r := recover(); r != nil {
			violations = []Violation{{
				Code:     "custom-rule-panic",
				Severity: SeverityError,
				Category: CategoryCustom,
				Message:  fmt.Sprintf("rule %q failed: %v", rule.Name(), r),
				Location: Location{File: v.file},
				Details:  map[string]string{"rule": rule.Name()},
			}}
		}
	}()
	return rule.Check(root)
}

// walkElements visits elem and every descendant element, pre-order.
func walkElements(elem xmldom.Element, visit func(xmldom.Element)) {
	visit(elem)
	children := elem.Children()
	for i := uint(0); i < children.Length(); i++ {
		if child := children.Item(i); child != nil {
			walkElements(child, visit)
		}
	}
}
