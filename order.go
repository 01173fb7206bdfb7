package xmlvalidate

import (
	"fmt"

	"github.com/agentflare-ai/go-xmldom"
)

// OrderValidator replays the model's declared child-element order
// against the live document tree. The external engine does not enforce
// cross-type ordering identically to the modeled map, so this check
// runs independently.
type OrderValidator struct {
	model *SchemaModel
	file  string
}

// NewOrderValidator creates a validator bound to one schema model.
func NewOrderValidator(model *SchemaModel, file string) *OrderValidator {
	return &OrderValidator{model: model, file: file}
}

// Validate walks the document depth-first, pre-order, and returns every
// ordering violation found.
func (v *OrderValidator) Validate(doc xmldom.Document) []Violation {
	if doc == nil {
		return nil
	}
	root := doc.DocumentElement()
	if root == nil {
		return nil
	}
	return v.checkElement(root)
}

// checkElement checks one node's children against its declared order,
// then descends. Nodes without a declared order are order-unconstrained
// but still visited, so nested constrained subtrees are reached.
func (v *OrderValidator) checkElement(elem xmldom.Element) []Violation {
	var violations []Violation

	if expected, ok := v.model.ComplexTypeOrder[localName(elem)]; ok && len(expected) > 0 {
		violations = append(violations, v.checkOrder(elem, expected)...)
	}

	children := elem.Children()
	for i := uint(0); i < children.Length(); i++ {
		if child := children.Item(i); child != nil {
			violations = append(violations, v.checkElement(child)...)
		}
	}
	return violations
}

// checkOrder matches children against the expected order. The position
// advances only on a match; a mismatch is reported once and the
// position holds (no resynchronization). A trailing shortfall is one
// missing-element violation naming the first absent expected name,
// unless a mismatch was already reported for this node.
func (v *OrderValidator) checkOrder(elem xmldom.Element, expected []string) []Violation {
	var violations []Violation
	position := 0
	mismatched := false

	children := elem.Children()
	for i := uint(0); i < children.Length(); i++ {
		child := children.Item(i)
		if child == nil {
			continue
		}
		name := localName(child)

		if position >= len(expected) {
			violations = append(violations, Violation{
				Code:     "order-unexpected",
				Severity: SeverityError,
				Category: CategoryOrder,
				Message:  fmt.Sprintf("element '%s' is not expected in '%s'", name, localName(elem)),
				Location: locationOf(child, v.file),
				Actual:   name,
			})
			mismatched = true
			continue
		}

		if name == expected[position] {
			position++
			continue
		}

		violations = append(violations, Violation{
			Code:     "order-mismatch",
			Severity: SeverityError,
			Category: CategoryOrder,
			Message: fmt.Sprintf("element order violation in '%s': expected '%s', found '%s'",
				localName(elem), expected[position], name),
			Location: locationOf(child, v.file),
			Expected: expected[position],
			Actual:   name,
		})
		mismatched = true
	}

	if position < len(expected) && !mismatched {
		violations = append(violations, Violation{
			Code:     "order-missing",
			Severity: SeverityError,
			Category: CategoryOrder,
			Message: fmt.Sprintf("required element '%s' is missing in '%s'",
				expected[position], localName(elem)),
			Location: locationOf(elem, v.file),
			Expected: expected[position],
		})
	}
	return violations
}
