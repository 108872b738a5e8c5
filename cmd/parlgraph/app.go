package main

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/c-bata/go-prompt"
	"github.com/google/uuid"
	"github.com/viant/parlgraph/config"
	"github.com/viant/parlgraph/dataset"
	"github.com/viant/parlgraph/engine"
	"github.com/viant/parlgraph/index/sqlrank"
	"github.com/viant/parlgraph/query"
	"github.com/viant/parlgraph/snapshot"
)

type app struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
}

// openService loads the dataset and wires the configured ranker. The
// returned closer releases the snapshot database, if any.
func (a *app) openService(ctx context.Context) (*query.Service, func(), error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, nil, err
	}
	opts := []query.Option{query.WithLogger(a.logger), query.WithWorkers(a.cfg.Workers)}
	closer := func() {}

	var ds *dataset.Dataset
	var db *sql.DB
	var err error
	if a.cfg.Ranker == config.RankerSQLite || a.cfg.Dataset == "" {
		db, err = engine.OpenWithFunctions(a.cfg.Snapshot)
		if err != nil {
			return nil, nil, err
		}
		closer = func() { _ = db.Close() }
		store, err := snapshot.NewSQLiteStore(ctx, db)
		if err != nil {
			closer()
			return nil, nil, err
		}
		if ds, err = store.Load(ctx); err != nil {
			closer()
			return nil, nil, err
		}
	} else if ds, err = dataset.LoadFile(a.cfg.Dataset); err != nil {
		return nil, nil, err
	}

	if a.cfg.Ranker == config.RankerSQLite {
		ranker, err := sqlrank.New(db)
		if err != nil {
			closer()
			return nil, nil, err
		}
		opts = append(opts, query.WithRanker(ranker))
	}
	srv, err := query.New(ds, opts...)
	if err != nil {
		closer()
		return nil, nil, err
	}
	a.logger.Debug("dataset loaded", "rows", ds.Len(), "ranker", a.cfg.Ranker)
	return srv, closer, nil
}

func (a *app) queryCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	name := fs.String("name", "", "parliamentarian name")
	k := fs.Int("k", a.cfg.K, "number of neighbors")
	asJSON := fs.Bool("json", false, "print JSON")
	_ = fs.Parse(args)
	if *name == "" && fs.NArg() > 0 {
		*name = strings.Join(fs.Args(), " ")
	}
	if *name == "" {
		return fmt.Errorf("query: -name is required")
	}

	srv, closer, err := a.openService(ctx)
	if err != nil {
		return err
	}
	defer closer()
	res, err := srv.Query(ctx, *name, *k)
	if err != nil {
		return err
	}
	if *asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return renderResult(a.out, res)
}

func (a *app) promptCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("prompt", flag.ExitOnError)
	k := fs.Int("k", a.cfg.K, "number of neighbors")
	_ = fs.Parse(args)

	srv, closer, err := a.openService(ctx)
	if err != nil {
		return err
	}
	defer closer()

	suggestions := nameSuggestions(srv.Dataset())
	completer := func(d prompt.Document) []prompt.Suggest {
		text := d.TextBeforeCursor()
		if text == "" {
			return []prompt.Suggest{}
		}
		return prompt.FilterContains(suggestions, text, true)
	}

	fmt.Fprintln(a.out, "Select a parliamentarian. Press Enter on an empty line to exit.")
	for {
		name := strings.TrimSpace(prompt.Input("parliamentarian> ", completer,
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionSuggestionTextColor(prompt.Yellow),
			prompt.OptionSuggestionBGColor(prompt.Black),
			prompt.OptionDescriptionBGColor(prompt.Black),
			prompt.OptionDescriptionTextColor(prompt.Yellow),
			prompt.OptionScrollbarBGColor(prompt.Black),
		))
		if name == "" || name == "exit" {
			return nil
		}
		start := time.Now()
		res, err := srv.Query(ctx, name, *k)
		if err != nil {
			fmt.Fprintln(a.out, "Error:", err)
			continue
		}
		if err := renderResult(a.out, res); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Time taken: %v\n", time.Since(start))
	}
}

func (a *app) batchCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	k := fs.Int("k", a.cfg.K, "number of neighbors")
	outPath := fs.String("out", "", "output file (default stdout)")
	_ = fs.Parse(args)

	srv, closer, err := a.openService(ctx)
	if err != nil {
		return err
	}
	defer closer()

	logger := a.logger.With("run_id", uuid.NewString())
	subjects := srv.Dataset().Names()
	start := time.Now()
	results, err := srv.QueryAll(ctx, subjects, *k)
	if err != nil {
		return err
	}

	w := a.out
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	logger.Info("batch complete", "subjects", len(results), "k", *k, "elapsed", time.Since(start))
	return nil
}

func (a *app) importCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	in := fs.String("in", a.cfg.Dataset, "JSON dataset path")
	out := fs.String("out", a.cfg.Snapshot, "SQLite snapshot path")
	_ = fs.Parse(args)
	if *in == "" || *out == "" {
		return fmt.Errorf("import: -in and -out are required")
	}

	ds, err := dataset.LoadFile(*in)
	if err != nil {
		return err
	}
	db, err := engine.Open(*out)
	if err != nil {
		return err
	}
	defer db.Close()
	store, err := snapshot.NewSQLiteStore(ctx, db)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, ds); err != nil {
		return err
	}
	a.logger.Info("snapshot written", "path", *out, "nodes", len(ds.Nodes()), "edges", len(ds.Edges()), "rows", ds.Len())
	return nil
}

func (a *app) statsCmd(ctx context.Context, args []string) error {
	srv, closer, err := a.openService(ctx)
	if err != nil {
		return err
	}
	defer closer()
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(srv.Dataset().Stats())
}

func (a *app) listCmd(ctx context.Context, args []string) error {
	srv, closer, err := a.openService(ctx)
	if err != nil {
		return err
	}
	defer closer()
	return renderSectors(a.out, srv.Dataset().BySector())
}
