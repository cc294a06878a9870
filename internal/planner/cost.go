package planner

import (
	"github.com/leengari/mini-optimizer/internal/domain/errors"
)

// AccessMethod identifies the chosen access path
type AccessMethod string

const (
	MethodIndex AccessMethod = "INDEX"
	MethodScan  AccessMethod = "SCAN"
)

// AccessPathEstimate is the comparator's verdict: which path to take,
// how many rows it is expected to return, and at what cost (in block
// reads). Immutable once computed.
type AccessPathEstimate struct {
	Method        AccessMethod
	EstimatedRows float64
	EstimatedCost float64
}

// CompareAccessPaths costs an index range scan against a full table
// scan and picks the cheaper path.
//
// The index cost model is the clustering-factor share: an index range
// scan visits clusteringFactor block transitions over the whole key
// domain, so a predicate matching estimatedRows of totalRows visits
// roughly clusteringFactor × estimatedRows / totalRows blocks. The
// full scan reads every block once. Ties go to the full scan: with
// multiblock reads it is never slower at equal block counts.
func CompareAccessPaths(clusteringFactor int64, estimatedRows float64, totalRows, totalBlocks int64) (AccessPathEstimate, error) {
	if totalRows <= 0 {
		return AccessPathEstimate{}, &errors.InvalidInputError{
			Operation: "compare",
			Reason:    "total row count must be positive",
			Position:  -1,
			Value:     totalRows,
		}
	}
	if totalBlocks <= 0 {
		return AccessPathEstimate{}, &errors.InvalidInputError{
			Operation: "compare",
			Reason:    "total block count must be positive",
			Position:  -1,
			Value:     totalBlocks,
		}
	}
	if clusteringFactor < totalBlocks || clusteringFactor > totalRows {
		return AccessPathEstimate{}, &errors.InvalidInputError{
			Operation: "compare",
			Reason:    "clustering factor outside [blocks, rows]",
			Position:  -1,
			Value:     clusteringFactor,
		}
	}
	if estimatedRows < 0 {
		return AccessPathEstimate{}, &errors.InvalidInputError{
			Operation: "compare",
			Reason:    "estimated row count is negative",
			Position:  -1,
			Value:     estimatedRows,
		}
	}
	if estimatedRows > float64(totalRows) {
		estimatedRows = float64(totalRows)
	}

	indexCost := float64(clusteringFactor) * estimatedRows / float64(totalRows)
	scanCost := float64(totalBlocks)

	if indexCost < scanCost {
		return AccessPathEstimate{
			Method:        MethodIndex,
			EstimatedRows: estimatedRows,
			EstimatedCost: indexCost,
		}, nil
	}
	return AccessPathEstimate{
		Method:        MethodScan,
		EstimatedRows: estimatedRows,
		EstimatedCost: scanCost,
	}, nil
}

// FullScanEstimate is the only path when no usable index exists
func FullScanEstimate(estimatedRows float64, totalBlocks int64) AccessPathEstimate {
	return AccessPathEstimate{
		Method:        MethodScan,
		EstimatedRows: estimatedRows,
		EstimatedCost: float64(totalBlocks),
	}
}
