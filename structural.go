package xmlvalidate

import (
	"strings"

	"github.com/agentflare-ai/go-xmldom"
	"github.com/agentflare-ai/go-xsd"
)

// StructuralValidator checks whole-document schema conformance. The
// bulk of the work is delegated to the go-xsd engine; on top of that it
// replays the modeled simple types so that element and attribute values
// run through the facet validators.
type StructuralValidator struct {
	model *SchemaModel
	file  string
}

// NewStructuralValidator creates a validator bound to one schema model.
// file is used for violation locations and may be empty.
func NewStructuralValidator(model *SchemaModel, file string) *StructuralValidator {
	return &StructuralValidator{model: model, file: file}
}

// Validate returns every structural violation found in the document.
// When the document does not conform, the violations are additionally
// wrapped in a SchemaValidationFailedError so callers that treat
// non-conformance as a failure can detect it; the orchestrator converts
// that into a failed class record instead of aborting.
func (v *StructuralValidator) Validate(doc xmldom.Document) ([]Violation, error) {
	if doc == nil {
		return nil, &SchemaValidationFailedError{Violations: []Violation{{
			Code:     "document-missing",
			Severity: SeverityError,
			Category: CategorySchema,
			Message:  "document is nil",
			Location: Location{File: v.file},
		}}}
	}

	violations := v.delegate(doc)
	if root := doc.DocumentElement(); root != nil {
		violations = append(violations, v.checkModeledValues(root)...)
	}

	if len(violations) > 0 {
		return violations, &SchemaValidationFailedError{Violations: violations}
	}
	return nil, nil
}

// delegate runs the external validation engine and wraps each raw
// diagnostic into a Violation, attaching the declared type of the
// offending element when the model knows it.
func (v *StructuralValidator) delegate(doc xmldom.Document) []Violation {
	if v.model.compiled == nil {
		return nil
	}

	raw := xsd.NewValidator(v.model.compiled).Validate(doc)
	violations := make([]Violation, 0, len(raw))
	for _, rv := range raw {
		violation := Violation{
			Code:     rv.Code,
			Severity: SeverityError,
			Category: CategorySchema,
			Message:  rv.Message,
			Location: locationOf(rv.Element, v.file),
			Expected: strings.Join(rv.Expected, ", "),
			Actual:   rv.Actual,
		}
		details := make(map[string]string)
		if rv.Attribute != "" {
			details["attribute"] = rv.Attribute
		}
		if rv.Element != nil {
			if typ, ok := v.model.ElementTypes[string(rv.Element.LocalName())]; ok {
				details["declaredType"] = typ
			}
		}
		if len(details) > 0 {
			violation.Details = details
		}
		violations = append(violations, violation)
	}
	return violations
}

// checkModeledValues walks the document and validates the text content
// of elements whose declared type is a modeled simple type, and the
// values of declared attributes likewise.
func (v *StructuralValidator) checkModeledValues(elem xmldom.Element) []Violation {
	var violations []Violation

	name := localName(elem)
	if typeName, ok := v.model.ElementTypes[name]; ok {
		if st, ok := v.model.SimpleTypes[typeName]; ok {
			value := strings.TrimSpace(elementText(elem))
			violations = append(violations,
				v.located(CheckValue(st.Base, value, st.Restrictions), elem, typeName)...)
		}
	}

	attrs := elem.Attributes()
	for i := uint(0); i < attrs.Length(); i++ {
		attr := attrs.Item(i)
		if attr == nil {
			continue
		}
		attrName := string(attr.LocalName())
		if attrName == "xmlns" || strings.HasPrefix(attrName, "xmlns") {
			continue
		}
		decl, ok := v.model.Attributes[attrName]
		if !ok {
			continue
		}
		if st, ok := v.model.SimpleTypes[decl.Type]; ok {
			vs := v.located(CheckValue(st.Base, string(attr.NodeValue()), st.Restrictions), elem, decl.Type)
			for j := range vs {
				if vs[j].Details == nil {
					vs[j].Details = make(map[string]string)
				}
				vs[j].Details["attribute"] = attrName
			}
			violations = append(violations, vs...)
		}
	}

	children := elem.Children()
	for i := uint(0); i < children.Length(); i++ {
		if child := children.Item(i); child != nil {
			violations = append(violations, v.checkModeledValues(child)...)
		}
	}
	return violations
}

// located stamps pure facet violations with the element's position and
// declared type.
func (v *StructuralValidator) located(violations []Violation, elem xmldom.Element, typeName string) []Violation {
	for i := range violations {
		violations[i].Location = locationOf(elem, v.file)
		if violations[i].Details == nil {
			violations[i].Details = make(map[string]string)
		}
		violations[i].Details["declaredType"] = typeName
	}
	return violations
}
