package schema

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/leengari/mini-optimizer/internal/domain/data"
)

// DefaultBlockSize is the number of rows per storage block when the
// table metadata does not specify one
const DefaultBlockSize = 64

// Table represents a table with its schema, data, indexes, and the
// physical block layout the estimator reasons about
type Table struct {
	mu        sync.RWMutex
	Name      string
	Columns   []Column
	Rows      []data.Row
	Indexes   map[string]*Index
	BlockSize int // rows per storage block
}

// NewTable creates an empty table with the given schema
// A blockSize of 0 falls back to DefaultBlockSize
func NewTable(name string, columns []Column, blockSize int) *Table {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Table{
		Name:      name,
		Columns:   columns,
		Indexes:   make(map[string]*Index),
		BlockSize: blockSize,
	}
}

// Insert appends a row after validating it against the schema
func (t *Table) Insert(mutRow data.Row) error {
	row := mutRow.Copy() // prevent mutation of caller's data

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.validateRow(row); err != nil {
		return err
	}

	newRowPos := len(t.Rows)
	t.Rows = append(t.Rows, row)

	// Update indexes
	for colName, idx := range t.Indexes {
		if val, exists := row.Data[colName]; exists {
			idx.Data[normalizeKey(val)] = append(idx.Data[normalizeKey(val)], newRowPos)
		}
	}

	return nil
}

// NumRows returns the current row count
func (t *Table) NumRows() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return int64(len(t.Rows))
}

// NumBlocks returns the number of storage blocks the rows occupy
func (t *Table) NumBlocks() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.numBlocksUnsafe()
}

func (t *Table) numBlocksUnsafe() int64 {
	if len(t.Rows) == 0 {
		return 0
	}
	return int64((len(t.Rows) + t.BlockSize - 1) / t.BlockSize)
}

// BlockOf returns the block id holding the row at the given position
// Rows are laid out in insertion order, BlockSize rows per block
func (t *Table) BlockOf(pos int) int64 {
	return int64(pos / t.BlockSize)
}

// Column returns the schema column with the given name, or nil
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// Scan iterates all rows under a read lock, calling fn with the row
// position and the row. Iteration stops on the first error from fn.
func (t *Table) Scan(fn func(pos int, row data.Row) error) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for pos, row := range t.Rows {
		if err := fn(pos, row); err != nil {
			return err
		}
	}
	return nil
}

// BuildIndexes rebuilds all secondary indexes declared by the schema
func (t *Table) BuildIndexes() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, col := range t.Columns {
		if !col.Indexed {
			continue
		}
		if _, exists := t.Indexes[col.Name]; !exists {
			t.Indexes[col.Name] = NewIndex(col.Name, col.Unique)
		}
	}

	// Clear existing index data
	for _, idx := range t.Indexes {
		idx.Data = make(map[interface{}][]int)
	}

	// Rebuild from current rows
	for rowPos, row := range t.Rows {
		for colName, idx := range t.Indexes {
			if val, exists := row.Data[colName]; exists {
				key := normalizeKey(val)
				idx.Data[key] = append(idx.Data[key], rowPos)
			}
		}
	}

	slog.Debug("indexes built", "table", t.Name, "indexes", len(t.Indexes))
}

// validateRow validates a row against the table schema
// Must be called while holding the write lock
func (t *Table) validateRow(row data.Row) error {
	for _, col := range t.Columns {
		value, exists := row.Data[col.Name]
		if !exists {
			continue
		}
		if err := validateType(t.Name, col.Name, value, col.Type); err != nil {
			return err
		}
	}
	return nil
}

// validateType validates that a value matches the expected column type
func validateType(table, colName string, value interface{}, expectedType ColumnType) error {
	switch expectedType {
	case ColumnTypeInt:
		if _, ok := normalizeToInt64(value); !ok {
			return fmt.Errorf("table %s column %s: expected INT, got %T", table, colName, value)
		}
	case ColumnTypeFloat:
		switch value.(type) {
		case float64, int64, int:
		default:
			return fmt.Errorf("table %s column %s: expected FLOAT, got %T", table, colName, value)
		}
	case ColumnTypeText:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("table %s column %s: expected TEXT, got %T", table, colName, value)
		}
	}
	return nil
}

// normalizeKey collapses the numeric types JSON and Go literals produce
// into a single representation so index lookups are stable
func normalizeKey(val interface{}) interface{} {
	if i, ok := normalizeToInt64(val); ok {
		return i
	}
	return val
}

// normalizeToInt64 converts various numeric types to int64
// Returns the int64 value and true if successful, 0 and false otherwise
func normalizeToInt64(val interface{}) (int64, bool) {
	switch v := val.(type) {
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}
