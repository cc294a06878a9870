package repl

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/chzyer/readline"

	"github.com/leengari/mini-optimizer/internal/analyzer"
	"github.com/leengari/mini-optimizer/internal/engine"
)

// Start runs the interactive shell until exit
func Start(eng *engine.Engine) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "> ",
		HistoryFile: "/tmp/mini-optimizer.history",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println("Welcome to mini-optimizer")
	fmt.Println("Commands: explain <select>, analyze <table>, stats <table>, ls, exit")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "exit" || line == "\\q" {
			return nil
		}

		if err := dispatch(eng, line); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}
}

func dispatch(eng *engine.Engine, line string) error {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "ls", "list":
		fmt.Println("Registered tables:")
		for _, name := range eng.Tables() {
			fmt.Printf("  - %s\n", name)
		}
		return nil

	case "explain":
		if rest == "" {
			return fmt.Errorf("usage: explain <select statement>")
		}
		return explain(eng, rest)

	case "select":
		// Bare SELECTs are treated as explain requests
		return explain(eng, line)

	case "analyze":
		if rest == "" {
			return fmt.Errorf("usage: analyze <table>")
		}
		ts, err := eng.Analyze(context.Background(), rest)
		if err != nil {
			return err
		}
		fmt.Printf("analyzed %s: %d rows, %d blocks, %d columns, %d indexes\n",
			ts.Table, ts.NumRows, ts.NumBlocks, len(ts.Columns), len(ts.Indexes))
		return nil

	case "stats":
		if rest == "" {
			return fmt.Errorf("usage: stats <table>")
		}
		ts, err := eng.Stats(context.Background(), rest)
		if err != nil {
			return err
		}
		printStats(os.Stdout, ts)
		return nil

	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func explain(eng *engine.Engine, sql string) error {
	result, err := eng.Explain(context.Background(), sql)
	if err != nil {
		return err
	}
	PrintResult(os.Stdout, result.Result())
	return nil
}

// PrintResult prints an explain table with aligned columns
func PrintResult(w io.Writer, res *engine.Result) {
	if res.Message != "" {
		fmt.Fprintln(w, res.Message)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	// Header
	fmt.Fprintln(tw, strings.Join(res.Columns, "\t"))

	// Separator
	seps := make([]string, len(res.Columns))
	for i := range seps {
		seps[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(seps, "\t"))

	for _, row := range res.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	tw.Flush()
}

// printStats prints per-column and per-index statistics for a table
func printStats(w io.Writer, ts *analyzer.TableStats) {
	fmt.Fprintf(w, "table %s: %d rows, %d blocks (run %s)\n", ts.Table, ts.NumRows, ts.NumBlocks, ts.RunID)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "column\tdistinct\tmin\tmax")
	fmt.Fprintln(tw, "---\t---\t---\t---")

	columns := make([]string, 0, len(ts.Columns))
	for name := range ts.Columns {
		columns = append(columns, name)
	}
	sort.Strings(columns)

	for _, name := range columns {
		cs := ts.Columns[name]
		fmt.Fprintf(tw, "%s\t%d\t%v\t%v\n", name, cs.Distinct, cs.Min, cs.Max)
	}
	tw.Flush()

	if len(ts.Indexes) == 0 {
		return
	}

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "index\tclustering_factor")
	fmt.Fprintln(tw, "---\t---")

	indexes := make([]string, 0, len(ts.Indexes))
	for name := range ts.Indexes {
		indexes = append(indexes, name)
	}
	sort.Strings(indexes)

	for _, name := range indexes {
		fmt.Fprintf(tw, "%s\t%d\n", name, ts.Indexes[name].ClusteringFactor)
	}
	tw.Flush()
}
