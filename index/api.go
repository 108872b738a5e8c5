package index

import (
	"context"
	"errors"
)

var (
	// ErrMalformedEmbedding reports a missing, out-of-range or wrong-sized
	// embedding row.
	ErrMalformedEmbedding = errors.New("index: malformed embedding")
	// ErrInvalidK reports a negative neighbor count.
	ErrInvalidK = errors.New("index: k must be non-negative")
)

// Neighbor is a ranked embedding row and its cosine similarity to the subject.
type Neighbor struct {
	Index int
	Score float64
}

// Ranker ranks every embedding row against a subject row.
type Ranker interface {
	// Rank returns up to k rows most similar to subject, excluding subject
	// itself, ordered by descending score with ties broken by ascending row.
	Rank(ctx context.Context, subject int, k int) ([]Neighbor, error)
}

// Less reports whether a ranks before b: higher score first, then lower row.
func Less(a, b Neighbor) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Index < b.Index
}
