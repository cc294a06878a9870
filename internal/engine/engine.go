package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/xwb1989/sqlparser"

	"github.com/leengari/mini-optimizer/internal/analyzer"
	"github.com/leengari/mini-optimizer/internal/domain/run"
	"github.com/leengari/mini-optimizer/internal/domain/schema"
	"github.com/leengari/mini-optimizer/internal/planner"
)

// Engine ties the analyzer and planner together behind an EXPLAIN
// surface: parse a single-table SELECT, look up statistics, estimate,
// and return the chosen access plan
type Engine struct {
	tables    map[string]*schema.Table
	analyzer  *analyzer.Analyzer
	observers []Observer
}

// New creates an engine over the given analyzer
func New(an *analyzer.Analyzer) *Engine {
	return &Engine{
		tables:   make(map[string]*schema.Table),
		analyzer: an,
	}
}

// Register makes a table visible to EXPLAIN
func (e *Engine) Register(t *schema.Table) {
	e.tables[t.Name] = t
}

// Table returns a registered table by name
func (e *Engine) Table(name string) (*schema.Table, bool) {
	t, ok := e.tables[name]
	return t, ok
}

// Tables returns the registered table names, sorted
func (e *Engine) Tables() []string {
	names := make([]string, 0, len(e.tables))
	for name := range e.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Subscribe adds an observer for estimation lifecycle events
func (e *Engine) Subscribe(o Observer) {
	e.observers = append(e.observers, o)
}

func (e *Engine) notify(eventType EventType, runID string, data interface{}) {
	event := Event{
		Type:      eventType,
		RunID:     runID,
		Timestamp: time.Now(),
		Data:      data,
	}
	for _, o := range e.observers {
		o.OnEvent(event)
	}
}

// Explain estimates the access path for a single-table SELECT and
// returns the chosen plan without executing it
func (e *Engine) Explain(ctx context.Context, sql string) (*ExplainResult, error) {
	r := run.New()

	// 1. Parse
	e.notify(EventParseStart, r.ID, sql)
	stmt, err := sqlparser.Parse(sql)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	sel, ok := stmt.(*sqlparser.Select)
	if !ok {
		return nil, fmt.Errorf("only SELECT statements can be explained, got %T", stmt)
	}

	tableName, err := tableNameOf(sel)
	if err != nil {
		return nil, err
	}
	t, ok := e.tables[tableName]
	if !ok {
		return nil, fmt.Errorf("table not found: %s", tableName)
	}

	pred, err := buildPredicate(sel.Where)
	if err != nil {
		return nil, err
	}
	e.notify(EventParseEnd, r.ID, pred)

	// 2. Statistics
	e.notify(EventStatsStart, r.ID, tableName)
	ts, err := e.analyzer.GetTableStats(ctx, t)
	if err != nil {
		return nil, err
	}
	e.notify(EventStatsEnd, r.ID, ts.RunID)

	// 3. Estimate and build the plan
	e.notify(EventEstimateStart, r.ID, nil)
	node, est, err := planner.BuildPlan(ts, pred)
	if err != nil {
		return nil, err
	}
	e.notify(EventEstimateEnd, r.ID, est)

	return &ExplainResult{
		SQL:      sql,
		Table:    tableName,
		Plan:     node,
		Estimate: est,
		RunID:    r.ID,
	}, nil
}

// Analyze recomputes statistics for a registered table
func (e *Engine) Analyze(ctx context.Context, tableName string) (*analyzer.TableStats, error) {
	t, ok := e.tables[tableName]
	if !ok {
		return nil, fmt.Errorf("table not found: %s", tableName)
	}
	return e.analyzer.Analyze(ctx, t)
}

// Stats returns the (possibly cached) statistics for a registered table
func (e *Engine) Stats(ctx context.Context, tableName string) (*analyzer.TableStats, error) {
	t, ok := e.tables[tableName]
	if !ok {
		return nil, fmt.Errorf("table not found: %s", tableName)
	}
	return e.analyzer.GetTableStats(ctx, t)
}

// tableNameOf extracts the single table a SELECT reads from
func tableNameOf(sel *sqlparser.Select) (string, error) {
	if len(sel.From) != 1 {
		return "", fmt.Errorf("expected exactly one table in FROM, got %d", len(sel.From))
	}
	aliased, ok := sel.From[0].(*sqlparser.AliasedTableExpr)
	if !ok {
		return "", fmt.Errorf("unsupported FROM clause: %s", sqlparser.String(sel.From[0]))
	}
	tn, ok := aliased.Expr.(sqlparser.TableName)
	if !ok {
		return "", fmt.Errorf("unsupported FROM clause: %s", sqlparser.String(aliased))
	}
	return tn.Name.String(), nil
}
