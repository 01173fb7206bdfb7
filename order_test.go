package xmlvalidate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderModel(orders map[string][]string) *SchemaModel {
	return &SchemaModel{ComplexTypeOrder: orders}
}

func TestOrderValidator_ConformantSequence(t *testing.T) {
	t.Parallel()

	model := orderModel(map[string][]string{"invoice": {"a", "b", "c"}})
	doc := mustParse(t, `<invoice><a/><b/><c/></invoice>`)

	violations := NewOrderValidator(model, "test.xml").Validate(doc)
	assert.Empty(t, violations)
}

func TestOrderValidator_SwappedChildren(t *testing.T) {
	t.Parallel()

	// [a,c,b] against [a,b,c]: exactly one violation, at position 1.
	model := orderModel(map[string][]string{"invoice": {"a", "b", "c"}})
	doc := mustParse(t, `<invoice><a/><c/><b/></invoice>`)

	violations := NewOrderValidator(model, "test.xml").Validate(doc)
	require.Len(t, violations, 1)
	assert.Equal(t, "order-mismatch", violations[0].Code)
	assert.Equal(t, "b", violations[0].Expected)
	assert.Equal(t, "c", violations[0].Actual)
	assert.Equal(t, CategoryOrder, violations[0].Category)
}

func TestOrderValidator_MissingTrailingChild(t *testing.T) {
	t.Parallel()

	model := orderModel(map[string][]string{"invoice": {"a", "b", "c"}})
	doc := mustParse(t, `<invoice><a/></invoice>`)

	violations := NewOrderValidator(model, "test.xml").Validate(doc)
	require.Len(t, violations, 1)
	assert.Equal(t, "order-missing", violations[0].Code)
	// The first absent expected element is named.
	assert.Equal(t, "b", violations[0].Expected)
}

func TestOrderValidator_NoChildrenIsViolation(t *testing.T) {
	t.Parallel()

	// Zero children against a non-empty order is missing elements,
	// not a vacuous pass.
	model := orderModel(map[string][]string{"invoice": {"a", "b"}})
	doc := mustParse(t, `<invoice/>`)

	violations := NewOrderValidator(model, "test.xml").Validate(doc)
	require.Len(t, violations, 1)
	assert.Equal(t, "order-missing", violations[0].Code)
	assert.Equal(t, "a", violations[0].Expected)
}

func TestOrderValidator_ExtraChild(t *testing.T) {
	t.Parallel()

	model := orderModel(map[string][]string{"invoice": {"a", "b"}})
	doc := mustParse(t, `<invoice><a/><b/><x/></invoice>`)

	violations := NewOrderValidator(model, "test.xml").Validate(doc)
	require.Len(t, violations, 1)
	assert.Equal(t, "order-unexpected", violations[0].Code)
	assert.Equal(t, "x", violations[0].Actual)
}

func TestOrderValidator_MismatchHoldsPosition(t *testing.T) {
	t.Parallel()

	// The position does not advance on a mismatch, so a later match
	// against the held position succeeds and the trailing shortfall is
	// not double-reported.
	model := orderModel(map[string][]string{"invoice": {"a", "b", "c"}})
	doc := mustParse(t, `<invoice><x/><a/><b/><c/></invoice>`)

	violations := NewOrderValidator(model, "test.xml").Validate(doc)
	require.Len(t, violations, 1)
	assert.Equal(t, "order-mismatch", violations[0].Code)
	assert.Equal(t, "a", violations[0].Expected)
	assert.Equal(t, "x", violations[0].Actual)
}

func TestOrderValidator_NestedOrders(t *testing.T) {
	t.Parallel()

	model := orderModel(map[string][]string{
		"invoice": {"header", "body"},
		"body":    {"x", "y"},
	})
	doc := mustParse(t, `<invoice><header/><body><y/><x/></body></invoice>`)

	violations := NewOrderValidator(model, "test.xml").Validate(doc)
	require.Len(t, violations, 1)
	assert.Equal(t, "order-mismatch", violations[0].Code)
	assert.Equal(t, "x", violations[0].Expected)
	assert.Equal(t, "y", violations[0].Actual)
	assert.Equal(t, "y", violations[0].Location.Element)
}

func TestOrderValidator_UnconstrainedNodesAreDescended(t *testing.T) {
	t.Parallel()

	// wrapper has no declared order but the walk still reaches the
	// constrained subtree below it.
	model := orderModel(map[string][]string{"body": {"x", "y"}})

	ok := mustParse(t, `<invoice><wrapper><body><x/><y/></body></wrapper></invoice>`)
	assert.Empty(t, NewOrderValidator(model, "test.xml").Validate(ok))

	bad := mustParse(t, `<invoice><wrapper><body><y/><x/></body></wrapper></invoice>`)
	assert.Len(t, NewOrderValidator(model, "test.xml").Validate(bad), 1)
}

func TestOrderValidator_LocationsPopulated(t *testing.T) {
	t.Parallel()

	model := orderModel(map[string][]string{"invoice": {"a", "b"}})
	doc := mustParse(t, "<invoice>\n  <b/>\n</invoice>")

	violations := NewOrderValidator(model, "doc.xml").Validate(doc)
	require.NotEmpty(t, violations)
	assert.Equal(t, "doc.xml", violations[0].Location.File)
	assert.Greater(t, violations[0].Location.Line, 0)
}
