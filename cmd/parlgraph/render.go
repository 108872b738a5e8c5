package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/c-bata/go-prompt"
	"github.com/viant/parlgraph/dataset"
	"github.com/viant/parlgraph/query"
)

func renderResult(w io.Writer, res *query.Result) error {
	fmt.Fprintf(w, "Parliamentarian: %s\nSector: %s\n\n", res.Subject, res.Sector)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Similar Parliamentarian\tSimilarity Score\tSector\tProportion Agreement")
	for _, n := range res.Neighbors {
		agreement := "N/A"
		if n.Agreement != nil {
			agreement = fmt.Sprintf("%.4f", *n.Agreement)
		}
		fmt.Fprintf(tw, "%s\t%.4f\t%s\t%s\n", n.Name, n.Similarity, n.Sector, agreement)
	}
	return tw.Flush()
}

func renderSectors(w io.Writer, groups []dataset.SectorGroup) error {
	for _, g := range groups {
		sector := g.Sector
		if sector == "" {
			sector = "(none)"
		}
		if _, err := fmt.Fprintf(w, "%s (%d)\n", sector, len(g.Names)); err != nil {
			return err
		}
		for _, name := range g.Names {
			if _, err := fmt.Fprintf(w, "  %s\n", name); err != nil {
				return err
			}
		}
	}
	return nil
}

// nameSuggestions lists indexed parliamentarians sorted by name, with the
// sector as description.
func nameSuggestions(ds *dataset.Dataset) []prompt.Suggest {
	names := ds.Names()
	sort.Strings(names)
	out := make([]prompt.Suggest, 0, len(names))
	for _, name := range names {
		s := prompt.Suggest{Text: name}
		if node, err := ds.NodeByName(name); err == nil {
			s.Description = node.Sector
		}
		out = append(out, s)
	}
	return out
}
