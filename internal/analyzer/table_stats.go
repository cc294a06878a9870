package analyzer

import (
	"time"

	"github.com/leengari/mini-optimizer/internal/stats"
)

// ColumnStats holds the distribution statistics gathered for one column
type ColumnStats struct {
	// Histogram covers the column's numeric key domain (strings are
	// mapped onto it via their prefix encoding)
	Histogram *stats.Histogram
	// Sketch is only set for TEXT columns and answers equality and
	// distinct-count questions the histogram would blur
	Sketch   *stats.StringSketch
	Distinct int64
	Min      interface{}
	Max      interface{}
}

// IndexStats holds the statistics gathered for one secondary index
type IndexStats struct {
	Column           string
	ClusteringFactor int64
}

// TableStats holds statistical information about a table at the time
// it was analyzed. Immutable once gathered; a new ANALYZE produces a
// fresh value.
type TableStats struct {
	Table      string
	NumRows    int64
	NumBlocks  int64
	Columns    map[string]*ColumnStats
	Indexes    map[string]*IndexStats
	RunID      string // the analysis run that produced these stats
	GatheredAt time.Time
}

// BlocksAccessed returns the number of blocks a full scan would read
func (ts *TableStats) BlocksAccessed() int64 {
	return ts.NumBlocks
}

// RecordsOutput returns the number of rows in the table
func (ts *TableStats) RecordsOutput() int64 {
	return ts.NumRows
}

// DistinctValues returns the distinct-value count for a column,
// or 0 when the column was not analyzed
func (ts *TableStats) DistinctValues(column string) int64 {
	cs, ok := ts.Columns[column]
	if !ok {
		return 0
	}
	return cs.Distinct
}
