package errors

import (
	"fmt"
	"strings"
)

// InvalidInputError reports malformed input to one of the estimators
// (empty sequences, unsorted keys, overlapping histogram buckets, etc.)
type InvalidInputError struct {
	Operation string      // "clustering_factor", "histogram", "compare"
	Reason    string      // human-readable explanation
	Position  int         // offending position in the input (-1 if unknown)
	Value     interface{} // offending value (may be nil)
}

func (e *InvalidInputError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("invalid input to %s", e.Operation))

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	if e.Position >= 0 {
		parts = append(parts, fmt.Sprintf("at position %d", e.Position))
	}

	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	return strings.Join(parts, " - ")
}

// OutOfDomainError reports a predicate whose bounds fall outside
// the key domain covered by a histogram
type OutOfDomainError struct {
	Column string      // column the histogram describes (empty if unknown)
	Bound  interface{} // the offending predicate bound
	Lower  interface{} // lowest covered key
	Upper  interface{} // highest covered key
}

func (e *OutOfDomainError) Error() string {
	var parts []string

	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("predicate bound outside histogram domain for column %s", e.Column))
	} else {
		parts = append(parts, "predicate bound outside histogram domain")
	}

	if e.Bound != nil {
		parts = append(parts, fmt.Sprintf("bound=%v", e.Bound))
	}

	if e.Lower != nil && e.Upper != nil {
		parts = append(parts, fmt.Sprintf("covered=[%v, %v]", e.Lower, e.Upper))
	}

	return strings.Join(parts, " - ")
}

func NewEmptyInput(operation string) *InvalidInputError {
	return &InvalidInputError{
		Operation: operation,
		Reason:    "sequence is empty",
		Position:  -1,
	}
}

func NewUnsortedInput(operation string, position int, value interface{}) *InvalidInputError {
	return &InvalidInputError{
		Operation: operation,
		Reason:    "sequence is not sorted by key",
		Position:  position,
		Value:     value,
	}
}

func NewOutOfDomain(column string, bound, lower, upper interface{}) *OutOfDomainError {
	return &OutOfDomainError{
		Column: column,
		Bound:  bound,
		Lower:  lower,
		Upper:  upper,
	}
}
