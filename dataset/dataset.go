package dataset

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNotFound is returned when a name or row has no matching record.
	ErrNotFound = errors.New("dataset: not found")
	// ErrIndexOutOfRange is returned when an embedding row is outside the matrix.
	ErrIndexOutOfRange = errors.New("dataset: embedding index out of range")
)

// Node is a parliamentarian record. Name is the identity.
type Node struct {
	Name     string `json:"name"`
	Sector   string `json:"sector"`
	ImageURL string `json:"url_imagen"`
}

// Edge is an undirected relationship between two parliamentarians.
type Edge struct {
	PersonA   string  `json:"parliamentarian_1"`
	PersonB   string  `json:"parliamentarian_2"`
	Agreement float64 `json:"proportion_agreement"`
}

// IndexEntry maps a parliamentarian name to an embedding row.
type IndexEntry struct {
	Name string
	Row  int
}

// Dataset is the immutable aggregate of nodes, edges, the name to row mapping
// and the embedding matrix. Lookup structures are derived once in New; no
// method mutates the dataset, so a *Dataset is safe for concurrent readers.
type Dataset struct {
	nodes   []Node
	edges   []Edge
	entries []IndexEntry
	rows    [][]float64

	byName  map[string]int // node position by name, first wins
	rowOf   map[string]int
	nameOf  map[int]string
	adjEdge map[pairKey]int
}

type pairKey struct{ lo, hi string }

func newPairKey(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// New builds a Dataset. Entries keep their order: when several names share a
// row, NameByIndex resolves to the first of them, and when a name repeats the
// first row wins. Inputs are copied so later caller mutations do not leak in.
func New(nodes []Node, edges []Edge, entries []IndexEntry, rows [][]float64) *Dataset {
	d := &Dataset{
		nodes:   append([]Node(nil), nodes...),
		edges:   append([]Edge(nil), edges...),
		entries: append([]IndexEntry(nil), entries...),
		rows:    make([][]float64, len(rows)),
		byName:  make(map[string]int, len(nodes)),
		rowOf:   make(map[string]int, len(entries)),
		nameOf:  make(map[int]string, len(entries)),
		adjEdge: make(map[pairKey]int, len(edges)),
	}
	for i, r := range rows {
		d.rows[i] = append([]float64(nil), r...)
	}
	for i, n := range d.nodes {
		if _, ok := d.byName[n.Name]; !ok {
			d.byName[n.Name] = i
		}
	}
	for _, e := range d.entries {
		if _, ok := d.rowOf[e.Name]; !ok {
			d.rowOf[e.Name] = e.Row
		}
		if _, ok := d.nameOf[e.Row]; !ok {
			d.nameOf[e.Row] = e.Name
		}
	}
	for i, e := range d.edges {
		k := newPairKey(e.PersonA, e.PersonB)
		if _, ok := d.adjEdge[k]; !ok {
			d.adjEdge[k] = i
		}
	}
	return d
}

// FromMap builds a Dataset from an unordered name to row map. Entries are
// ordered by name so reverse lookups stay deterministic.
func FromMap(nodes []Node, edges []Edge, index map[string]int, rows [][]float64) *Dataset {
	entries := make([]IndexEntry, 0, len(index))
	for name, row := range index {
		entries = append(entries, IndexEntry{Name: name, Row: row})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return New(nodes, edges, entries, rows)
}

// ResolveIndex returns the embedding row for name.
func (d *Dataset) ResolveIndex(name string) (int, error) {
	row, ok := d.rowOf[name]
	if !ok {
		return 0, fmt.Errorf("%w: index entry %q", ErrNotFound, name)
	}
	return row, nil
}

// EmbeddingOf returns the embedding at row. The returned slice is shared and
// must not be modified.
func (d *Dataset) EmbeddingOf(row int) ([]float64, error) {
	if row < 0 || row >= len(d.rows) {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, row, len(d.rows))
	}
	return d.rows[row], nil
}

// NodeByName returns the node record for name.
func (d *Dataset) NodeByName(name string) (Node, error) {
	i, ok := d.byName[name]
	if !ok {
		return Node{}, fmt.Errorf("%w: node %q", ErrNotFound, name)
	}
	return d.nodes[i], nil
}

// NameByIndex returns the name mapped to row.
func (d *Dataset) NameByIndex(row int) (string, error) {
	name, ok := d.nameOf[row]
	if !ok {
		return "", fmt.Errorf("%w: no name for row %d", ErrNotFound, row)
	}
	return name, nil
}

// EdgeBetween returns the first edge connecting a and b in either direction.
func (d *Dataset) EdgeBetween(a, b string) (Edge, bool) {
	i, ok := d.adjEdge[newPairKey(a, b)]
	if !ok {
		return Edge{}, false
	}
	return d.edges[i], true
}

// Len returns the number of embedding rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Rows returns the embedding matrix. Rows are shared and must not be modified.
func (d *Dataset) Rows() [][]float64 { return d.rows }

// Nodes returns a copy of the node list in load order.
func (d *Dataset) Nodes() []Node { return append([]Node(nil), d.nodes...) }

// Edges returns a copy of the edge list in load order.
func (d *Dataset) Edges() []Edge { return append([]Edge(nil), d.edges...) }

// Entries returns a copy of the index entries in load order.
func (d *Dataset) Entries() []IndexEntry { return append([]IndexEntry(nil), d.entries...) }

// Names returns the names of indexed parliamentarians in entry order,
// without duplicates.
func (d *Dataset) Names() []string {
	out := make([]string, 0, len(d.entries))
	seen := make(map[string]bool, len(d.entries))
	for _, e := range d.entries {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		out = append(out, e.Name)
	}
	return out
}
