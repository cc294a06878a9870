package stats

import "fmt"

// Op is a predicate operator the estimator understands
type Op string

const (
	OpEq      Op = "="
	OpLt      Op = "<"
	OpLe      Op = "<="
	OpGt      Op = ">"
	OpGe      Op = ">="
	OpBetween Op = "between"
	OpPrefix  Op = "prefix" // LIKE 'abc%'
)

// Predicate is a single-column filter condition
// Upper is only set for OpBetween
type Predicate struct {
	Column string
	Op     Op
	Value  interface{}
	Upper  interface{}
}

func (p Predicate) String() string {
	switch p.Op {
	case OpBetween:
		return fmt.Sprintf("%s between %v and %v", p.Column, p.Value, p.Upper)
	case OpPrefix:
		return fmt.Sprintf("%s like '%v%%'", p.Column, p.Value)
	default:
		return fmt.Sprintf("%s %s %v", p.Column, p.Op, p.Value)
	}
}
