package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/viant/parlgraph/config"
)

func main() {
	configPath := flag.String("config", os.Getenv("PARLGRAPH_CONFIG"), "YAML config file")
	envFile := flag.String("env", ".env", "dotenv file")
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	level, err := cfg.Level()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	app := &app{cfg: cfg, logger: logger, out: os.Stdout}
	ctx := context.Background()

	switch args[0] {
	case "query":
		err = app.queryCmd(ctx, args[1:])
	case "prompt":
		err = app.promptCmd(ctx, args[1:])
	case "batch":
		err = app.batchCmd(ctx, args[1:])
	case "import":
		err = app.importCmd(ctx, args[1:])
	case "stats":
		err = app.statsCmd(ctx, args[1:])
	case "list":
		err = app.listCmd(ctx, args[1:])
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error("command failed", "command", args[0], "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `parlgraph - parliamentarian similarity queries

Usage:
  parlgraph [-config file] [-env file] <command> [flags]

Commands:
  query   -name NAME [-k K] [-json]   most similar parliamentarians to NAME
  prompt  [-k K]                      interactive picker with name completion
  batch   [-k K] [-out file]          query every indexed parliamentarian (JSON lines)
  import  -out snapshot.db            write the JSON dataset into a SQLite snapshot
  stats                               dataset summary (JSON)
  list                                parliamentarians grouped by sector
`)
}
