package dataset

import (
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/viant/vec/search"
)

// SectorCount is the number of parliamentarians declared in a sector.
type SectorCount struct {
	Sector string `json:"sector"`
	Count  int    `json:"count"`
}

// Stats summarises a dataset. Norms are computed in float32 and are meant
// for display only.
type Stats struct {
	Nodes          int           `json:"nodes"`
	Edges          int           `json:"edges"`
	IndexEntries   int           `json:"indexEntries"`
	Rows           int           `json:"rows"`
	Dim            int           `json:"dim"`
	RaggedRows     int           `json:"raggedRows"`
	ZeroNormRows   int           `json:"zeroNormRows"`
	MinNorm        float32       `json:"minNorm"`
	MaxNorm        float32       `json:"maxNorm"`
	MeanNorm       float32       `json:"meanNorm"`
	UnindexedNodes []string      `json:"unindexedNodes,omitempty"`
	DanglingRows   []int         `json:"danglingRows,omitempty"`
	Sectors        []SectorCount `json:"sectors"`
}

// Stats computes a summary of d.
func (d *Dataset) Stats() Stats {
	s := Stats{
		Nodes:        len(d.nodes),
		Edges:        len(d.edges),
		IndexEntries: len(d.entries),
		Rows:         len(d.rows),
	}
	if len(d.rows) > 0 {
		s.Dim = len(d.rows[0])
	}
	var sum float32
	counted := 0
	for _, row := range d.rows {
		if len(row) != s.Dim {
			s.RaggedRows++
		}
		m := search.Float32s(toFloat32(row)).Magnitude()
		if m == 0 {
			s.ZeroNormRows++
			continue
		}
		if counted == 0 || m < s.MinNorm {
			s.MinNorm = m
		}
		if m > s.MaxNorm {
			s.MaxNorm = m
		}
		sum += m
		counted++
	}
	if counted > 0 {
		s.MeanNorm = sum / float32(counted)
	}
	for _, n := range d.nodes {
		if _, ok := d.rowOf[n.Name]; !ok {
			s.UnindexedNodes = append(s.UnindexedNodes, n.Name)
		}
	}
	for row := range d.rows {
		if _, ok := d.nameOf[row]; !ok {
			s.DanglingRows = append(s.DanglingRows, row)
		}
	}
	for _, group := range d.BySector() {
		s.Sectors = append(s.Sectors, SectorCount{Sector: group.Sector, Count: len(group.Names)})
	}
	return s
}

// SectorGroup lists parliamentarians declared in one sector.
type SectorGroup struct {
	Sector string
	Names  []string
}

// BySector groups node names by sector, both sorted lexically.
func (d *Dataset) BySector() []SectorGroup {
	sectors := treemap.NewWithStringComparator()
	for _, n := range d.nodes {
		names, ok := sectors.Get(n.Sector)
		if !ok {
			names = treemap.NewWithStringComparator()
			sectors.Put(n.Sector, names)
		}
		names.(*treemap.Map).Put(n.Name, struct{}{})
	}
	out := make([]SectorGroup, 0, sectors.Size())
	it := sectors.Iterator()
	for it.Next() {
		group := SectorGroup{Sector: it.Key().(string)}
		for _, name := range it.Value().(*treemap.Map).Keys() {
			group.Names = append(group.Names, name.(string))
		}
		out = append(out, group)
	}
	return out
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
