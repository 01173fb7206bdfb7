package xmlvalidate

import (
	"github.com/agentflare-ai/go-xmldom"
)

// Orchestrator runs the three validation classes in a fixed order:
// structural, custom, order. A failing class never prevents the others
// from running, so one report carries every violation found.
//
// The cache is an explicit handle; orchestrators sharing a cache share
// schema models across documents and goroutines.
type Orchestrator struct {
	cache *ModelCache
	rules []Rule
}

// NewOrchestrator creates an orchestrator. A nil cache gets a private
// cache with the default TTL; an empty rule list gets DefaultRules.
func NewOrchestrator(cache *ModelCache, rules ...Rule) *Orchestrator {
	if cache == nil {
		cache = NewModelCache(0)
	}
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Orchestrator{cache: cache, rules: rules}
}

// Cache exposes the orchestrator's schema cache.
func (o *Orchestrator) Cache() *ModelCache { return o.cache }

// Model returns the schema model for a path, building and caching it
// when absent or stale.
func (o *Orchestrator) Model(xsdPath string) (*SchemaModel, error) {
	if model, ok := o.cache.Get(xsdPath); ok {
		return model, nil
	}
	doc, err := LoadDocument(xsdPath)
	if err != nil {
		return nil, err
	}
	model, err := BuildModel(doc)
	if err != nil {
		return nil, err
	}
	o.cache.Set(xsdPath, model)
	return model, nil
}

// ValidateFile validates one document file against one schema file.
// Collaborator failures (IOError, ParseError, SchemaMalformedError)
// propagate and terminate this document's validation attempt; rule
// violations never do.
func (o *Orchestrator) ValidateFile(xmlPath, xsdPath string) (Outcome, error) {
	model, err := o.Model(xsdPath)
	if err != nil {
		return Outcome{}, err
	}
	doc, err := LoadDocument(xmlPath)
	if err != nil {
		return Outcome{}, err
	}
	return o.validate(doc, model, xmlPath), nil
}

// Validate runs all validation classes over an already-parsed document.
func (o *Orchestrator) Validate(doc xmldom.Document, model *SchemaModel) Outcome {
	return o.validate(doc, model, "")
}

func (o *Orchestrator) validate(doc xmldom.Document, model *SchemaModel, file string) Outcome {
	structural, _ := NewStructuralValidator(model, file).Validate(doc)
	custom := NewCustomValidator(file, o.rules...).Validate(doc)
	order := NewOrderValidator(model, file).Validate(doc)

	return Outcome{Classes: []ClassResult{
		{Name: ClassStructural, Passed: len(structural) == 0, Violations: structural},
		{Name: ClassCustom, Passed: len(custom) == 0, Violations: custom},
		{Name: ClassOrder, Passed: len(order) == 0, Violations: order},
	}}
}
