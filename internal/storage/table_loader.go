package storage

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leengari/mini-optimizer/internal/domain/data"
	"github.com/leengari/mini-optimizer/internal/domain/schema"
)

// LoadTable reads a table fixture from a directory holding meta.json
// and data.json, inserts the rows, and builds the declared indexes
func LoadTable(path string) (*schema.Table, error) {
	metaPath := filepath.Join(path, "meta.json")
	dataPath := filepath.Join(path, "data.json")

	metaBytes, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta TableMeta
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, err
	}

	columns := make([]schema.Column, 0, len(meta.Columns))
	for _, c := range meta.Columns {
		columns = append(columns, schema.Column{
			Name:    c.Name,
			Type:    schema.ColumnType(c.Type),
			Indexed: c.Indexed,
			Unique:  c.Unique,
		})
	}

	table := schema.NewTable(meta.Name, columns, meta.BlockSize)

	rows := []data.Row{}
	if _, err := os.Stat(dataPath); err == nil {
		dataBytes, err := os.ReadFile(dataPath)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(dataBytes, &rows); err != nil {
			return nil, err
		}
	}

	for _, row := range rows {
		if err := table.Insert(row); err != nil {
			return nil, err
		}
	}
	table.BuildIndexes()

	slog.Info("table loaded",
		slog.String("table", table.Name),
		slog.Int("rows", len(rows)),
		slog.Int64("blocks", table.NumBlocks()),
	)

	return table, nil
}

// LoadDatabase loads every table fixture directory under dir
// A directory is a table fixture when it contains a meta.json
func LoadDatabase(dir string) ([]*schema.Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var tables []*schema.Table
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		tableDir := filepath.Join(dir, entry.Name())
		if _, err := os.Stat(filepath.Join(tableDir, "meta.json")); err != nil {
			continue
		}

		table, err := LoadTable(tableDir)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}

	return tables, nil
}
