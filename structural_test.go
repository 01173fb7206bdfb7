package xmlvalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// valueModel builds a model with no compiled schema, so only the
// modeled simple types are replayed. This keeps these tests focused on
// the facet plumbing rather than the external engine.
func valueModel() *SchemaModel {
	return &SchemaModel{
		SimpleTypes: map[string]SimpleType{
			"priceType": {
				Name: "priceType",
				Base: "decimal",
				Restrictions: Restrictions{
					MinInclusive:   strPtr("0"),
					TotalDigits:    intPtr(7),
					FractionDigits: intPtr(2),
				},
			},
			"currencyType": {
				Name: "currencyType",
				Base: "string",
				Restrictions: Restrictions{
					Pattern: strPtr("[A-Z]{3}"),
				},
			},
		},
		Attributes: map[string]AttributeDecl{
			"currency": {Name: "currency", Type: "currencyType", Use: "required"},
		},
		ElementTypes: map[string]string{
			"price": "priceType",
		},
	}
}

func TestStructuralValidator_ElementValues(t *testing.T) {
	t.Parallel()

	v := NewStructuralValidator(valueModel(), "invoice.xml")

	doc := mustParse(t, `<invoice><price>19.99</price></invoice>`)
	violations, err := v.Validate(doc)
	assert.NoError(t, err)
	assert.Empty(t, violations)

	doc = mustParse(t, `<invoice><price>-1.00</price></invoice>`)
	violations, err = v.Validate(doc)
	require.Len(t, violations, 1)
	assert.Equal(t, "facet-minInclusive", violations[0].Code)
	assert.Equal(t, "priceType", violations[0].Details["declaredType"])
	assert.Equal(t, "invoice.xml", violations[0].Location.File)

	var failed *SchemaValidationFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, violations, failed.Violations)
}

func TestStructuralValidator_AttributeValues(t *testing.T) {
	t.Parallel()

	v := NewStructuralValidator(valueModel(), "invoice.xml")

	doc := mustParse(t, `<invoice currency="USD"/>`)
	violations, err := v.Validate(doc)
	assert.NoError(t, err)
	assert.Empty(t, violations)

	doc = mustParse(t, `<invoice currency="usd"/>`)
	violations, err = v.Validate(doc)
	require.Error(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, "facet-pattern", violations[0].Code)
	assert.Equal(t, "currency", violations[0].Details["attribute"])
	assert.Equal(t, "currencyType", violations[0].Details["declaredType"])
}

func TestStructuralValidator_ValueWhitespaceTrimmed(t *testing.T) {
	t.Parallel()

	v := NewStructuralValidator(valueModel(), "")
	doc := mustParse(t, "<invoice><price>\n  19.99\n</price></invoice>")

	violations, err := v.Validate(doc)
	assert.NoError(t, err)
	assert.Empty(t, violations)
}

func TestStructuralValidator_UndeclaredValuesIgnored(t *testing.T) {
	t.Parallel()

	v := NewStructuralValidator(valueModel(), "")
	doc := mustParse(t, `<invoice other="zzz"><note>free text</note></invoice>`)

	violations, err := v.Validate(doc)
	assert.NoError(t, err)
	assert.Empty(t, violations)
}

func TestStructuralValidator_NilDocument(t *testing.T) {
	t.Parallel()

	v := NewStructuralValidator(valueModel(), "missing.xml")
	violations, err := v.Validate(nil)
	require.Error(t, err)
	require.Len(t, violations, 0)

	var failed *SchemaValidationFailedError
	require.ErrorAs(t, err, &failed)
	require.Len(t, failed.Violations, 1)
	assert.Equal(t, "document-missing", failed.Violations[0].Code)
}

func TestStructuralValidator_CompiledSchema(t *testing.T) {
	t.Parallel()

	schemaDoc := mustParse(t, `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:element name="invoice">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="header" type="xs:string"/>
        <xs:element name="body" type="xs:string"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`)

	model, err := BuildModel(schemaDoc)
	require.NoError(t, err)
	require.NotNil(t, model.compiled)

	v := NewStructuralValidator(model, "invoice.xml")

	ok := mustParse(t, `<invoice><header>h</header><body>b</body></invoice>`)
	violations, err := v.Validate(ok)
	assert.NoError(t, err)
	assert.Empty(t, violations)

	bad := mustParse(t, `<wrong/>`)
	violations, err = v.Validate(bad)
	require.Error(t, err)
	require.NotEmpty(t, violations)
	for _, violation := range violations {
		assert.Equal(t, CategorySchema, violation.Category)
		assert.Equal(t, SeverityError, violation.Severity)
		assert.Equal(t, "invoice.xml", violation.Location.File)
	}
}
