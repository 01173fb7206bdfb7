// Package xmlvalidate validates XML documents against a restricted XSD
// subset: linear sequence ordering, simpleType facet restrictions and
// attribute declarations.
//
// The package models a parsed schema once (SchemaModel), then runs three
// independent validation classes over the document tree: structural
// conformance (delegated to the go-xsd engine plus facet checks for
// modeled simple types), custom business rules, and declared child-order
// checks. Each class is isolated, so a single run always reports every
// violation found across all classes. Results aggregate into an Outcome
// and render through Report.
//
// Parsing of XML and XSD text is delegated to go-xmldom; this package
// only consumes the resulting document trees.
package xmlvalidate
