package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// document mirrors the datos_completos.json layout produced by the embedding
// pipeline.
type document struct {
	Nodes      []Node       `json:"nodos"`
	Edges      []Edge       `json:"aristas"`
	Index      orderedIndex `json:"parliamentarian_to_index"`
	Embeddings [][]float64  `json:"embeddings"`
}

// orderedIndex decodes a JSON object into entries, keeping key order.
type orderedIndex []IndexEntry

func (o *orderedIndex) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("dataset: parliamentarian_to_index: expected object, got %v", tok)
	}
	var entries []IndexEntry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("dataset: parliamentarian_to_index: unexpected key %v", tok)
		}
		var row int
		if err := dec.Decode(&row); err != nil {
			return fmt.Errorf("dataset: parliamentarian_to_index[%q]: %w", name, err)
		}
		entries = append(entries, IndexEntry{Name: name, Row: row})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = entries
	return nil
}

// Decode parses a dataset document from r.
func Decode(r io.Reader) (*Dataset, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("dataset: decode: %w", err)
	}
	return New(doc.Nodes, doc.Edges, doc.Index, doc.Embeddings), nil
}

// LoadFile reads and parses the dataset document at path.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
