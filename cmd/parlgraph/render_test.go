package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/parlgraph/dataset"
	"github.com/viant/parlgraph/query"
)

func TestRenderResult(t *testing.T) {
	agreement := 0.8
	res := &query.Result{Subject: "A", Sector: "North", Neighbors: []query.Neighbor{
		{Name: "B", Similarity: 1, Sector: "South", Agreement: &agreement},
		{Name: "C", Similarity: 0.123456, Sector: "East"},
	}}
	var buf bytes.Buffer
	require.NoError(t, renderResult(&buf, res))

	out := buf.String()
	assert.Contains(t, out, "Sector: North")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Regexp(t, `^B\s+1\.0000\s+South\s+0\.8000$`, lines[len(lines)-2])
	assert.Regexp(t, `^C\s+0\.1235\s+East\s+N/A$`, lines[len(lines)-1])
}

func TestRenderSectors(t *testing.T) {
	ds := dataset.New([]dataset.Node{{Name: "b", Sector: "S"}, {Name: "a", Sector: ""}}, nil, nil, nil)
	var buf bytes.Buffer
	require.NoError(t, renderSectors(&buf, ds.BySector()))
	assert.Equal(t, "(none) (1)\n  a\nS (1)\n  b\n", buf.String())
}

func TestNameSuggestions(t *testing.T) {
	ds := dataset.New(
		[]dataset.Node{{Name: "Zoe", Sector: "Green"}},
		nil,
		[]dataset.IndexEntry{{Name: "Zoe", Row: 0}, {Name: "Adam", Row: 1}},
		[][]float64{{1}, {2}},
	)
	s := nameSuggestions(ds)
	require.Len(t, s, 2)
	assert.Equal(t, "Adam", s[0].Text)
	assert.Equal(t, "", s[0].Description)
	assert.Equal(t, "Zoe", s[1].Text)
	assert.Equal(t, "Green", s[1].Description)
}
