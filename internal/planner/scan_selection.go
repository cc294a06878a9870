package planner

import (
	"github.com/leengari/mini-optimizer/internal/analyzer"
	"github.com/leengari/mini-optimizer/internal/domain/errors"
	"github.com/leengari/mini-optimizer/internal/plan"
	"github.com/leengari/mini-optimizer/internal/stats"
)

// EstimateRows estimates how many rows of the analyzed table match the
// predicate. TEXT equality goes to the count-min sketch; everything
// else goes to the column histogram.
func EstimateRows(ts *analyzer.TableStats, pred stats.Predicate) (float64, error) {
	cs, ok := ts.Columns[pred.Column]
	if !ok {
		return 0, &errors.InvalidInputError{
			Operation: "estimate",
			Reason:    "no statistics for column",
			Position:  -1,
			Value:     pred.Column,
		}
	}

	if pred.Op == stats.OpEq && cs.Sketch != nil {
		if s, ok := pred.Value.(string); ok {
			return cs.Sketch.EstimateEquals(s), nil
		}
	}

	if cs.Histogram == nil {
		return 0, &errors.InvalidInputError{
			Operation: "estimate",
			Reason:    "no histogram for column",
			Position:  -1,
			Value:     pred.Column,
		}
	}
	return cs.Histogram.Estimate(pred)
}

// SelectAccessPath estimates the predicate's row count and chooses
// between the index path and the full scan. Without a usable index on
// the predicate column the full scan is the only path.
func SelectAccessPath(ts *analyzer.TableStats, pred stats.Predicate) (AccessPathEstimate, error) {
	rows, err := EstimateRows(ts, pred)
	if err != nil {
		return AccessPathEstimate{}, err
	}

	is, ok := ts.Indexes[pred.Column]
	if !ok || ts.NumRows == 0 || ts.NumBlocks == 0 {
		return FullScanEstimate(rows, ts.NumBlocks), nil
	}
	// A sparse index (column missing from some rows) can report a
	// factor below the block count; its stats don't describe a full
	// range scan, so the table scan is the honest answer
	if is.ClusteringFactor < ts.NumBlocks {
		return FullScanEstimate(rows, ts.NumBlocks), nil
	}

	return CompareAccessPaths(is.ClusteringFactor, rows, ts.NumRows, ts.NumBlocks)
}

// BuildPlan converts the chosen access path into an explain tree with
// cost metadata attached to each node. A nil predicate plans an
// unconditional full scan.
func BuildPlan(ts *analyzer.TableStats, pred *stats.Predicate) (plan.Node, AccessPathEstimate, error) {
	if pred == nil {
		est := FullScanEstimate(float64(ts.NumRows), ts.NumBlocks)
		scan := &plan.FullScanNode{TableName: ts.Table}
		attachEstimate(scan, est, "sequential")
		scan.Metadata()[plan.MetaTable] = ts.Table
		return scan, est, nil
	}

	est, err := SelectAccessPath(ts, *pred)
	if err != nil {
		return nil, AccessPathEstimate{}, err
	}

	var leaf plan.Node
	switch est.Method {
	case MethodIndex:
		leaf = &plan.IndexScanNode{TableName: ts.Table, IndexColumn: pred.Column}
		attachEstimate(leaf, est, "index")
	default:
		leaf = &plan.FullScanNode{TableName: ts.Table}
		attachEstimate(leaf, est, "sequential")
	}
	leaf.Metadata()[plan.MetaTable] = ts.Table

	filter := plan.NewFilterNode(leaf, pred.String())
	attachEstimate(filter, est, "")
	return filter, est, nil
}

// attachEstimate attaches cost metadata to a node
func attachEstimate(node plan.Node, est AccessPathEstimate, scanType string) {
	md := node.Metadata()
	md[plan.MetaEstimatedRows] = est.EstimatedRows
	md[plan.MetaEstimatedCost] = est.EstimatedCost
	if scanType != "" {
		md[plan.MetaScanType] = scanType
	}
}
