package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xwb1989/sqlparser"

	"github.com/leengari/mini-optimizer/internal/stats"
)

// buildPredicate converts a parsed WHERE clause into a stats predicate
// Returns nil when there is no WHERE clause
func buildPredicate(where *sqlparser.Where) (*stats.Predicate, error) {
	if where == nil {
		return nil, nil
	}

	switch expr := where.Expr.(type) {
	case *sqlparser.ComparisonExpr:
		return buildComparison(expr)
	case *sqlparser.RangeCond:
		return buildRange(expr)
	default:
		return nil, fmt.Errorf("unsupported WHERE expression: %s", sqlparser.String(where.Expr))
	}
}

func buildComparison(expr *sqlparser.ComparisonExpr) (*stats.Predicate, error) {
	col, ok := expr.Left.(*sqlparser.ColName)
	if !ok {
		return nil, fmt.Errorf("left side of comparison must be a column, got %s", sqlparser.String(expr.Left))
	}

	value, err := literalValue(expr.Right)
	if err != nil {
		return nil, err
	}

	var op stats.Op
	switch expr.Operator {
	case sqlparser.EqualStr:
		op = stats.OpEq
	case sqlparser.LessThanStr:
		op = stats.OpLt
	case sqlparser.LessEqualStr:
		op = stats.OpLe
	case sqlparser.GreaterThanStr:
		op = stats.OpGt
	case sqlparser.GreaterEqualStr:
		op = stats.OpGe
	case sqlparser.LikeStr:
		pattern, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("LIKE pattern must be a string")
		}
		prefix, err := likePrefix(pattern)
		if err != nil {
			return nil, err
		}
		return &stats.Predicate{Column: col.Name.String(), Op: stats.OpPrefix, Value: prefix}, nil
	default:
		return nil, fmt.Errorf("unsupported comparison operator: %s", expr.Operator)
	}

	return &stats.Predicate{Column: col.Name.String(), Op: op, Value: value}, nil
}

func buildRange(expr *sqlparser.RangeCond) (*stats.Predicate, error) {
	if expr.Operator != sqlparser.BetweenStr {
		return nil, fmt.Errorf("unsupported range operator: %s", expr.Operator)
	}

	col, ok := expr.Left.(*sqlparser.ColName)
	if !ok {
		return nil, fmt.Errorf("left side of BETWEEN must be a column, got %s", sqlparser.String(expr.Left))
	}

	from, err := literalValue(expr.From)
	if err != nil {
		return nil, err
	}
	to, err := literalValue(expr.To)
	if err != nil {
		return nil, err
	}

	return &stats.Predicate{Column: col.Name.String(), Op: stats.OpBetween, Value: from, Upper: to}, nil
}

// likePrefix extracts the literal prefix from a LIKE pattern
// Only trailing-% patterns are estimable; anything else is rejected
func likePrefix(pattern string) (string, error) {
	if !strings.HasSuffix(pattern, "%") {
		return "", fmt.Errorf("only prefix LIKE patterns are supported (got %q)", pattern)
	}
	prefix := strings.TrimSuffix(pattern, "%")
	if strings.ContainsAny(prefix, "%_") {
		return "", fmt.Errorf("only prefix LIKE patterns are supported (got %q)", pattern)
	}
	return prefix, nil
}

// literalValue converts a SQL literal into a Go value
func literalValue(expr sqlparser.Expr) (interface{}, error) {
	val, ok := expr.(*sqlparser.SQLVal)
	if !ok {
		return nil, fmt.Errorf("expected a literal, got %s", sqlparser.String(expr))
	}

	switch val.Type {
	case sqlparser.IntVal:
		i, err := strconv.ParseInt(string(val.Val), 10, 64)
		if err != nil {
			return nil, err
		}
		return i, nil
	case sqlparser.FloatVal:
		f, err := strconv.ParseFloat(string(val.Val), 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	case sqlparser.StrVal:
		return string(val.Val), nil
	default:
		return nil, fmt.Errorf("unsupported literal type in %s", sqlparser.String(expr))
	}
}
