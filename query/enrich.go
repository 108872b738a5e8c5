package query

import "github.com/viant/parlgraph/index"

// enrich joins ranked rows with names, sectors and the agreement proportion
// of the edge between subject and each neighbor.
func (s *Service) enrich(subject string, ranked []index.Neighbor) []Neighbor {
	out := make([]Neighbor, 0, len(ranked))
	for _, r := range ranked {
		n := Neighbor{Similarity: r.Score}
		name, err := s.ds.NameByIndex(r.Index)
		if err != nil {
			s.logger.Warn("missing index entry", "row", r.Index)
			out = append(out, n)
			continue
		}
		n.Name = name
		n.Sector = s.sectorOf(name)
		if edge, ok := s.ds.EdgeBetween(subject, name); ok {
			agreement := edge.Agreement
			n.Agreement = &agreement
		}
		out = append(out, n)
	}
	return out
}
