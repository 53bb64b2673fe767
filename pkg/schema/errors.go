package schema

import "fmt"

// CatalogError is a single catalog problem, keyed by the preset and
// field it concerns.
type CatalogError struct {
	Preset string // preset id, or "" for document-level problems
	Field  string
	Reason string
}

func (e *CatalogError) Error() string {
	if e.Preset == "" {
		return fmt.Sprintf("catalog: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("preset %q: %s: %s", e.Preset, e.Field, e.Reason)
}

// AggregateError collects every problem found in one parse pass.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d catalog errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// CatalogErrors unpacks an AggregateError, or returns nil for any other
// error.
func CatalogErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}
