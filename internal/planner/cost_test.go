package planner

import (
	"errors"
	"testing"

	domainerrors "github.com/leengari/mini-optimizer/internal/domain/errors"
)

// TestSelectivePredicatePicksIndex mirrors the motivating case: a
// predicate matching 5 of 72909 rows against a 1152-block table
func TestSelectivePredicatePicksIndex(t *testing.T) {
	est, err := CompareAccessPaths(22000, 5, 72909, 1152)
	if err != nil {
		t.Fatalf("CompareAccessPaths failed: %v", err)
	}

	if est.Method != MethodIndex {
		t.Errorf("expected INDEX, got %s", est.Method)
	}
	if est.EstimatedRows != 5 {
		t.Errorf("expected 5 estimated rows, got %f", est.EstimatedRows)
	}
	if est.EstimatedCost >= 1152 {
		t.Errorf("index cost should be far below the scan cost, got %f", est.EstimatedCost)
	}
}

// TestWholeDomainPredicatePicksScan verifies a predicate matching every
// row never beats the full scan
func TestWholeDomainPredicatePicksScan(t *testing.T) {
	est, err := CompareAccessPaths(22000, 72909, 72909, 1152)
	if err != nil {
		t.Fatalf("CompareAccessPaths failed: %v", err)
	}

	if est.Method != MethodScan {
		t.Errorf("expected SCAN, got %s", est.Method)
	}
	if est.EstimatedCost != 1152 {
		t.Errorf("expected scan cost 1152, got %f", est.EstimatedCost)
	}
}

// TestTieGoesToScan: equal block counts resolve to the full scan
func TestTieGoesToScan(t *testing.T) {
	// perfectly clustered index (factor == blocks), whole-domain predicate
	est, err := CompareAccessPaths(100, 1000, 1000, 100)
	if err != nil {
		t.Fatalf("CompareAccessPaths failed: %v", err)
	}

	if est.Method != MethodScan {
		t.Errorf("expected SCAN on a cost tie, got %s", est.Method)
	}
}

func TestEstimatedRowsClampedToTotal(t *testing.T) {
	est, err := CompareAccessPaths(100, 5000, 1000, 100)
	if err != nil {
		t.Fatalf("CompareAccessPaths failed: %v", err)
	}

	if est.EstimatedRows != 1000 {
		t.Errorf("estimated rows should be clamped to total rows, got %f", est.EstimatedRows)
	}
}

func TestCompareValidation(t *testing.T) {
	cases := []struct {
		name             string
		clusteringFactor int64
		estimatedRows    float64
		totalRows        int64
		totalBlocks      int64
	}{
		{"zero rows", 10, 1, 0, 10},
		{"zero blocks", 10, 1, 100, 0},
		{"factor below blocks", 5, 1, 100, 10},
		{"factor above rows", 200, 1, 100, 10},
		{"negative estimate", 50, -1, 100, 10},
	}

	for _, tc := range cases {
		_, err := CompareAccessPaths(tc.clusteringFactor, tc.estimatedRows, tc.totalRows, tc.totalBlocks)
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}

		var invalid *domainerrors.InvalidInputError
		if !errors.As(err, &invalid) {
			t.Errorf("%s: expected InvalidInputError, got %T", tc.name, err)
		}
	}
}

func TestFullScanEstimate(t *testing.T) {
	est := FullScanEstimate(42, 100)
	if est.Method != MethodScan {
		t.Errorf("expected SCAN, got %s", est.Method)
	}
	if est.EstimatedCost != 100 {
		t.Errorf("expected cost 100, got %f", est.EstimatedCost)
	}
}
