package xmlvalidate

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/agentflare-ai/go-xmldom"
	"github.com/agentflare-ai/go-xsd"
)

// SimpleType holds a named simple type: its base type plus the sparse
// set of restriction facets declared on it.
type SimpleType struct {
	Name         string
	Base         string
	Restrictions Restrictions
}

// AttributeDecl records a declared attribute.
type AttributeDecl struct {
	Name    string
	Type    string
	Default string
	Use     string
}

// UnknownElement is a schema construct the modeler does not interpret.
// Collected for forward compatibility instead of failing the walk.
type UnknownElement struct {
	Name   string
	Line   int
	Column int
}

// SchemaModel is the immutable in-memory form of one schema document.
// Built once per schema, read-only afterwards, cacheable by path.
type SchemaModel struct {
	// ComplexTypeOrder maps a complex-type name to the expected child
	// element names, in declaration order.
	ComplexTypeOrder map[string][]string
	// SimpleTypes maps a simple-type name to its base and facets.
	SimpleTypes map[string]SimpleType
	// Attributes maps an attribute name to its declaration.
	Attributes map[string]AttributeDecl
	// ElementTypes maps a declared element name to its type name.
	ElementTypes map[string]string
	// UnknownElements lists constructs the walk skipped over.
	UnknownElements []UnknownElement

	compiled *xsd.Schema // handle for the structural primitive
}

// BuildModel walks a parsed schema tree once and produces its model.
// A tree without a usable root fails fast with SchemaMalformedError;
// unrecognized constructs are collected, not fatal.
func BuildModel(doc xmldom.Document) (*SchemaModel, error) {
	if doc == nil {
		return nil, &SchemaMalformedError{Reason: "nil schema document"}
	}
	root := doc.DocumentElement()
	if root == nil {
		return nil, &SchemaMalformedError{Reason: "schema document has no root element"}
	}

	model := &SchemaModel{
		ComplexTypeOrder: make(map[string][]string),
		SimpleTypes:      make(map[string]SimpleType),
		Attributes:       make(map[string]AttributeDecl),
		ElementTypes:     make(map[string]string),
	}
	model.walk(root, "")

	compiled, err := xsd.Parse(doc)
	if err != nil {
		return nil, &SchemaMalformedError{Reason: "schema engine rejected document", Err: err}
	}
	model.compiled = compiled

	return model, nil
}

// walk visits one schema node depth-first. enclosingElement carries the
// name of the nearest enclosing element declaration, so an anonymous
// inline complexType is keyed by the element it belongs to.
func (m *SchemaModel) walk(elem xmldom.Element, enclosingElement string) {
	switch localName(elem) {
	case "complexType":
		m.handleComplexType(elem, enclosingElement)
	case "simpleType":
		m.handleSimpleType(elem)
		return // facet children are consumed above
	case "attribute":
		m.handleAttribute(elem)
	case "element":
		name := attrValue(elem, "name")
		if typ := stripPrefix(attrValue(elem, "type")); name != "" && typ != "" {
			m.ElementTypes[name] = typ
		}
		if name != "" {
			enclosingElement = name
		}
	case "schema", "sequence", "restriction", "extension",
		"simpleContent", "complexContent", "annotation", "documentation":
		// structural containers, nothing to record
	default:
		line, col, _ := elem.Position()
		m.UnknownElements = append(m.UnknownElements, UnknownElement{
			Name:   localName(elem),
			Line:   line,
			Column: col,
		})
		slog.Debug("skipping unknown schema construct",
			"element", localName(elem), "line", line)
	}

	children := elem.Children()
	for i := uint(0); i < children.Length(); i++ {
		if child := children.Item(i); child != nil {
			m.walk(child, enclosingElement)
		}
	}
}

// handleComplexType extracts the direct element children of the type's
// sequence, in document order.
func (m *SchemaModel) handleComplexType(elem xmldom.Element, enclosingElement string) {
	typeName := attrValue(elem, "name")
	if typeName == "" {
		typeName = enclosingElement
	}
	if typeName == "" {
		return
	}

	seq := directChild(elem, "sequence")
	if seq == nil {
		return
	}

	var order []string
	children := seq.Children()
	for i := uint(0); i < children.Length(); i++ {
		child := children.Item(i)
		if child == nil || localName(child) != "element" {
			continue
		}
		name := attrValue(child, "name")
		if name == "" {
			name = stripPrefix(attrValue(child, "ref"))
		}
		if name != "" {
			order = append(order, name)
		}
	}

	if _, exists := m.ComplexTypeOrder[typeName]; exists {
		slog.Warn("duplicate complexType declaration ignored", "type", typeName)
		return
	}
	m.ComplexTypeOrder[typeName] = order
}

func (m *SchemaModel) handleSimpleType(elem xmldom.Element) {
	name := attrValue(elem, "name")
	if name == "" {
		return
	}

	st := SimpleType{Name: name}
	restriction := directChild(elem, "restriction")
	if restriction != nil {
		st.Base = stripPrefix(attrValue(restriction, "base"))
		st.Restrictions = parseRestrictions(restriction)
	}
	m.SimpleTypes[name] = st
}

func (m *SchemaModel) handleAttribute(elem xmldom.Element) {
	name := attrValue(elem, "name")
	if name == "" {
		return
	}
	use := attrValue(elem, "use")
	if use == "" {
		use = "optional"
	}
	m.Attributes[name] = AttributeDecl{
		Name:    name,
		Type:    stripPrefix(attrValue(elem, "type")),
		Default: attrValue(elem, "default"),
		Use:     use,
	}
}

// parseRestrictions reads the facet children of a restriction node into
// a sparse Restrictions set. Facets with unparseable numeric values are
// skipped with a warning.
func parseRestrictions(restriction xmldom.Element) Restrictions {
	var r Restrictions
	children := restriction.Children()
	for i := uint(0); i < children.Length(); i++ {
		child := children.Item(i)
		if child == nil {
			continue
		}
		value := attrValue(child, "value")
		switch localName(child) {
		case "minInclusive":
			r.MinInclusive = &value
		case "maxInclusive":
			r.MaxInclusive = &value
		case "pattern":
			r.Pattern = &value
		case "minLength":
			if n, ok := facetInt(child, value); ok {
				r.MinLength = &n
			}
		case "maxLength":
			if n, ok := facetInt(child, value); ok {
				r.MaxLength = &n
			}
		case "totalDigits":
			if n, ok := facetInt(child, value); ok {
				r.TotalDigits = &n
			}
		case "fractionDigits":
			if n, ok := facetInt(child, value); ok {
				r.FractionDigits = &n
			}
		}
	}
	return r
}

func facetInt(elem xmldom.Element, value string) (int, bool) {
	n, err := strconv.Atoi(value)
	if err != nil {
		line, _, _ := elem.Position()
		slog.Warn("ignoring facet with non-integer value",
			"facet", localName(elem), "value", value, "line", line)
		return 0, false
	}
	return n, true
}

// directChild returns the first direct child with the given local name.
func directChild(elem xmldom.Element, name string) xmldom.Element {
	children := elem.Children()
	for i := uint(0); i < children.Length(); i++ {
		if child := children.Item(i); child != nil && localName(child) == name {
			return child
		}
	}
	return nil
}

func localName(elem xmldom.Element) string {
	return string(elem.LocalName())
}

func attrValue(elem xmldom.Element, name string) string {
	return string(elem.GetAttribute(xmldom.DOMString(name)))
}

// stripPrefix drops a namespace prefix from a QName-valued attribute,
// e.g. "xs:string" -> "string".
func stripPrefix(name string) string {
	if idx := strings.IndexByte(name, ':'); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

// elementText concatenates the direct text nodes of an element.
func elementText(elem xmldom.Element) string {
	var content strings.Builder
	nodes := elem.ChildNodes()
	for i := uint(0); i < nodes.Length(); i++ {
		if node := nodes.Item(i); node != nil && node.NodeType() == 3 { // TEXT_NODE
			content.WriteString(string(node.NodeValue()))
		}
	}
	return content.String()
}

// locationOf builds a Violation location from an element's position.
func locationOf(elem xmldom.Element, file string) Location {
	if elem == nil {
		return Location{File: file}
	}
	line, col, _ := elem.Position()
	return Location{
		Element: localName(elem),
		Line:    line,
		Column:  col,
		File:    file,
	}
}
