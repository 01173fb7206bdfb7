package xmlvalidate

import "fmt"

// IOError reports a missing or unreadable file. It aborts validation of
// the affected document but not a multi-file run.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports malformed XML text. Fatal for that document.
type ParseError struct {
	Path    string
	Message string
	Line    int
	Column  int
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to parse %s at %d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaMalformedError reports a schema tree the modeler cannot
// interpret. Fatal for that schema.
type SchemaMalformedError struct {
	Reason string
	Err    error
}

func (e *SchemaMalformedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed schema: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed schema: %s", e.Reason)
}

func (e *SchemaMalformedError) Unwrap() error { return e.Err }

// SchemaValidationFailedError carries the full violation list produced
// by the structural validator. The orchestrator converts it into a
// failed class record rather than aborting the run.
type SchemaValidationFailedError struct {
	Violations []Violation
}

func (e *SchemaValidationFailedError) Error() string {
	return fmt.Sprintf("schema validation failed with %d violations", len(e.Violations))
}
