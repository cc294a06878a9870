package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/leengari/mini-optimizer/internal/domain/data"
	"github.com/leengari/mini-optimizer/internal/domain/schema"
	"github.com/leengari/mini-optimizer/internal/engine"
	"github.com/leengari/mini-optimizer/internal/repl"
)

const demoRows = 10000

// demoTables builds one table with two indexed columns: "seq" follows
// insertion order (well clustered), "scattered" hops between blocks on
// every step. Same data volume, very different clustering factors.
func demoTables() []*schema.Table {
	orders := schema.NewTable("orders", []schema.Column{
		{Name: "seq", Type: schema.ColumnTypeInt, Indexed: true},
		{Name: "scattered", Type: schema.ColumnTypeInt, Indexed: true},
		{Name: "status", Type: schema.ColumnTypeText},
	}, 64)

	statuses := []string{"open", "open", "open", "shipped", "cancelled"}
	for i := 0; i < demoRows; i++ {
		row := data.NewRow(map[string]interface{}{
			"seq":       int64(i),
			"scattered": int64((i * 7919) % demoRows),
			"status":    statuses[i%len(statuses)],
		})
		if err := orders.Insert(row); err != nil {
			slog.Error("demo insert failed", "error", err)
			os.Exit(1)
		}
	}
	orders.BuildIndexes()

	return []*schema.Table{orders}
}

// runDemoQueries explains a few contrasting queries on startup
func runDemoQueries(eng *engine.Engine) {
	queries := []string{
		"select * from orders where seq between 100 and 300",
		"select * from orders where scattered between 100 and 300",
		"select * from orders where seq >= 0",
	}

	for _, sql := range queries {
		result, err := eng.Explain(context.Background(), sql)
		if err != nil {
			slog.Error("demo explain failed", "sql", sql, "error", err)
			continue
		}
		fmt.Printf("\n%s\n", sql)
		repl.PrintResult(os.Stdout, result.Result())
	}
	fmt.Println()
}
