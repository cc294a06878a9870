package analyzer

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/leengari/mini-optimizer/internal/domain/data"
	"github.com/leengari/mini-optimizer/internal/domain/run"
	"github.com/leengari/mini-optimizer/internal/domain/schema"
	"github.com/leengari/mini-optimizer/internal/stats"
)

// refreshThreshold is how many stats lookups may hit the cache before
// it is invalidated and recomputed on demand
const refreshThreshold = 100

// Analyzer gathers and caches per-table statistics
type Analyzer struct {
	mu         sync.RWMutex
	tableStats map[string]*TableStats
	numCalls   int
	tracer     trace.Tracer
}

// New creates an Analyzer with an empty cache
func New() *Analyzer {
	return &Analyzer{
		tableStats: make(map[string]*TableStats),
		tracer:     otel.Tracer("github.com/leengari/mini-optimizer/internal/analyzer"),
	}
}

// GetTableStats returns statistics for a table, analyzing it on first
// use and serving the cached result afterwards. The cache is cleared
// every refreshThreshold lookups so stats follow the data without a
// full rescan on every call.
func (a *Analyzer) GetTableStats(ctx context.Context, t *schema.Table) (*TableStats, error) {
	a.mu.RLock()
	ts, exists := a.tableStats[t.Name]
	a.mu.RUnlock()

	a.mu.Lock()
	a.numCalls++
	if a.numCalls > refreshThreshold {
		slog.Debug("stats cache invalidated", "num_calls", a.numCalls)
		a.tableStats = make(map[string]*TableStats)
		a.numCalls = 0
		exists = false
	}
	a.mu.Unlock()

	if exists {
		slog.Debug("using cached stats", "table", t.Name, "run_id", ts.RunID)
		return ts, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring the write lock: another goroutine
	// may have analyzed the table while we waited
	if ts, exists = a.tableStats[t.Name]; exists {
		return ts, nil
	}

	ts, err := a.analyze(ctx, t)
	if err != nil {
		return nil, err
	}
	a.tableStats[t.Name] = ts
	return ts, nil
}

// Analyze recomputes statistics for a table unconditionally and
// replaces the cached value
func (a *Analyzer) Analyze(ctx context.Context, t *schema.Table) (*TableStats, error) {
	ts, err := a.analyze(ctx, t)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.tableStats[t.Name] = ts
	a.mu.Unlock()

	return ts, nil
}

// analyze scans the table once per concern: row/block counts, one
// histogram and sketch pass over the columns, then a key-ordered walk
// of each index for its clustering factor
func (a *Analyzer) analyze(ctx context.Context, t *schema.Table) (*TableStats, error) {
	r := run.New()

	ctx, span := a.tracer.Start(ctx, "analyze_table",
		trace.WithAttributes(
			attribute.String("table", t.Name),
			attribute.String("run_id", r.ID),
		))
	defer span.End()

	slog.Info("analyzing table", "table", t.Name, "run_id", r.ID)

	ts := &TableStats{
		Table:      t.Name,
		NumRows:    t.NumRows(),
		NumBlocks:  t.NumBlocks(),
		Columns:    make(map[string]*ColumnStats),
		Indexes:    make(map[string]*IndexStats),
		RunID:      r.ID,
		GatheredAt: time.Now(),
	}

	for _, col := range t.Columns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cs, err := a.analyzeColumn(t, col)
		if err != nil {
			return nil, err
		}
		if cs != nil {
			ts.Columns[col.Name] = cs
		}
	}

	for colName, idx := range t.Indexes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		is, err := a.analyzeIndex(t, idx)
		if err != nil {
			return nil, err
		}
		if is != nil {
			ts.Indexes[colName] = is
		}
	}

	span.SetAttributes(
		attribute.Int64("rows", ts.NumRows),
		attribute.Int64("blocks", ts.NumBlocks),
	)
	slog.Info("table analyzed",
		"table", t.Name,
		"rows", ts.NumRows,
		"blocks", ts.NumBlocks,
		"columns", len(ts.Columns),
		"indexes", len(ts.Indexes),
		"elapsed", r.Elapsed(),
	)

	return ts, nil
}

// analyzeColumn scans one column into a histogram plus, for TEXT
// columns, a sketch pair. Returns nil when the column holds no values.
func (a *Analyzer) analyzeColumn(t *schema.Table, col schema.Column) (*ColumnStats, error) {
	var sketch *stats.StringSketch
	if col.Type == schema.ColumnTypeText {
		var err error
		sketch, err = stats.NewStringSketch()
		if err != nil {
			return nil, err
		}
	}

	var (
		values   []float64
		distinct = make(map[float64]struct{})
		min, max interface{}
	)

	err := t.Scan(func(pos int, row data.Row) error {
		val, exists := row.Get(col.Name)
		if !exists || val == nil {
			return nil
		}

		f, ok := stats.KeyToFloat(val)
		if !ok {
			return nil // non-orderable value, skip
		}
		values = append(values, f)
		distinct[f] = struct{}{}

		if sketch != nil {
			if s, ok := val.(string); ok {
				sketch.Add(s)
			}
		}

		if min == nil {
			min, max = val, val
			return nil
		}
		if cmp, err := stats.CompareKeys(val, min); err == nil && cmp < 0 {
			min = val
		}
		if cmp, err := stats.CompareKeys(val, max); err == nil && cmp > 0 {
			max = val
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(values) == 0 {
		return nil, nil
	}

	cs := &ColumnStats{
		Histogram: stats.BuildHistogram(col.Name, values, stats.NumHistBuckets),
		Sketch:    sketch,
		Distinct:  int64(len(distinct)),
		Min:       min,
		Max:       max,
	}
	// For TEXT columns the prefix encoding can collide; the
	// HyperLogLog count is the better distinct estimate there
	if sketch != nil {
		cs.Distinct = int64(sketch.Distinct())
	}
	return cs, nil
}

// analyzeIndex walks the index in key order, mapping each row position
// to its storage block, and computes the clustering factor over that
// visit sequence
func (a *Analyzer) analyzeIndex(t *schema.Table, idx *schema.Index) (*IndexStats, error) {
	keys := make([]interface{}, 0, len(idx.Data))
	for key := range idx.Data {
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	var sortErr error
	sort.Slice(keys, func(i, j int) bool {
		cmp, err := stats.CompareKeys(keys[i], keys[j])
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return cmp < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}

	var entries []stats.IndexEntry
	for _, key := range keys {
		for _, pos := range idx.Data[key] {
			entries = append(entries, stats.IndexEntry{
				Key:     key,
				BlockID: t.BlockOf(pos),
			})
		}
	}

	factor, err := stats.ClusteringFactor(entries)
	if err != nil {
		return nil, err
	}

	slog.Debug("index analyzed",
		"table", t.Name,
		"column", idx.Column,
		"clustering_factor", factor,
	)

	return &IndexStats{
		Column:           idx.Column,
		ClusteringFactor: factor,
	}, nil
}
