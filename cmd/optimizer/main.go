package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/leengari/mini-optimizer/internal/analyzer"
	"github.com/leengari/mini-optimizer/internal/engine"
	"github.com/leengari/mini-optimizer/internal/logging"
	"github.com/leengari/mini-optimizer/internal/repl"
	"github.com/leengari/mini-optimizer/internal/storage"
)

func main() {
	dataDir := flag.String("data", "", "directory of table fixtures (meta.json + data.json per table)")
	flag.Parse()

	logger, closeFn := logging.SetupLogger()
	defer closeFn()

	slog.SetDefault(logger)
	slog.Info("Starting mini-optimizer...")

	// Tracing: spans are collected but not exported anywhere by default
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	defer tp.Shutdown(context.Background())

	an := analyzer.New()
	eng := engine.New(an)
	eng.Subscribe(engine.NewLoggingObserver())

	if *dataDir != "" {
		tables, err := storage.LoadDatabase(*dataDir)
		if err != nil {
			slog.Error("failed to load fixtures", "dir", *dataDir, "error", err)
			closeFn()
			os.Exit(1)
		}
		for _, t := range tables {
			eng.Register(t)
		}
	} else {
		slog.Info("no -data directory given, building demo tables")
		for _, t := range demoTables() {
			eng.Register(t)
		}
		// Warm the stats cache and show what the comparator does with
		// a well-clustered and a scattered index
		runDemoQueries(eng)
	}

	if err := repl.Start(eng); err != nil {
		slog.Error("repl failed", "error", err)
		closeFn()
		os.Exit(1)
	}
}
