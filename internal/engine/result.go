package engine

import (
	"fmt"

	"github.com/leengari/mini-optimizer/internal/plan"
	"github.com/leengari/mini-optimizer/internal/planner"
)

// ExplainResult is what Explain returns: the chosen plan tree plus the
// comparator's verdict
type ExplainResult struct {
	SQL      string
	Table    string
	Plan     plan.Node
	Estimate planner.AccessPathEstimate
	RunID    string
}

// Result is a tabular rendering for display (one row per plan node)
type Result struct {
	Columns []string
	Rows    [][]string
	Message string
}

// Result renders the plan tree as an explain table
func (r *ExplainResult) Result() *Result {
	res := &Result{
		Columns: []string{"operation", "object", "rows", "cost"},
		Message: fmt.Sprintf("access path: %s", r.Estimate.Method),
	}

	depth := map[plan.Node]int{r.Plan: 0}
	_ = plan.WalkTree(r.Plan, func(n plan.Node) error {
		for _, child := range n.Children() {
			depth[child] = depth[n] + 1
		}

		indent := ""
		for i := 0; i < depth[n]; i++ {
			indent += "  "
		}

		object := ""
		switch node := n.(type) {
		case *plan.FullScanNode:
			object = node.TableName
		case *plan.IndexScanNode:
			object = fmt.Sprintf("%s(%s)", node.TableName, node.IndexColumn)
		case *plan.FilterNode:
			object = node.Condition
		}

		md := n.Metadata()
		rows, cost := "", ""
		if v, ok := md[plan.MetaEstimatedRows].(float64); ok {
			rows = fmt.Sprintf("%.0f", v)
		}
		if v, ok := md[plan.MetaEstimatedCost].(float64); ok {
			cost = fmt.Sprintf("%.1f", v)
		}

		res.Rows = append(res.Rows, []string{indent + n.NodeType(), object, rows, cost})
		return nil
	})

	return res
}
