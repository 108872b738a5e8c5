package bruteforce

import (
	"context"
	"fmt"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/viant/parlgraph/index"
	"github.com/viant/parlgraph/vector"
)

// Index is a brute-force ranker scoring every row by cosine similarity.
type Index struct {
	vecs [][]float64
	mags []float64
}

// New loads rows and precomputes their magnitudes. Rows are not copied and
// must not be modified afterwards. Dimension checks are deferred to Rank so a
// ragged matrix only fails the queries that touch it.
func New(rows [][]float64) *Index {
	mags := make([]float64, len(rows))
	for j := range rows {
		mags[j] = vector.Magnitude(rows[j])
	}
	return &Index{vecs: rows, mags: mags}
}

// Len returns the number of rows.
func (i *Index) Len() int { return len(i.vecs) }

// Rank returns the top-k rows by cosine similarity to subject, excluding
// subject. Zero-magnitude rows score 0 against everything.
func (i *Index) Rank(ctx context.Context, subject int, k int) ([]index.Neighbor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, fmt.Errorf("bruteforce: %w: %d", index.ErrInvalidK, k)
	}
	if subject < 0 || subject >= len(i.vecs) {
		return nil, fmt.Errorf("bruteforce: %w: subject row %d not in [0,%d)", index.ErrMalformedEmbedding, subject, len(i.vecs))
	}
	query := i.vecs[subject]
	dim := len(query)
	if dim == 0 {
		return nil, fmt.Errorf("bruteforce: %w: subject row %d is empty", index.ErrMalformedEmbedding, subject)
	}
	qm := i.mags[subject]

	// min-heap on rank order: the root is the weakest of the current top-k
	h := binaryheap.NewWith(weakestFirst)
	for j, v := range i.vecs {
		if j == subject {
			continue
		}
		if len(v) != dim {
			return nil, fmt.Errorf("bruteforce: %w: row %d has dim %d, want %d", index.ErrMalformedEmbedding, j, len(v), dim)
		}
		if k == 0 {
			continue
		}
		h.Push(index.Neighbor{Index: j, Score: vector.CosineWithMagnitude(query, qm, v, i.mags[j])})
		if h.Size() > k {
			h.Pop()
		}
	}

	out := make([]index.Neighbor, h.Size())
	for n := len(out) - 1; n >= 0; n-- {
		v, _ := h.Pop()
		out[n] = v.(index.Neighbor)
	}
	return out, nil
}

func weakestFirst(a, b interface{}) int {
	x, y := a.(index.Neighbor), b.(index.Neighbor)
	switch {
	case index.Less(y, x):
		return -1
	case index.Less(x, y):
		return 1
	}
	return 0
}

var _ index.Ranker = (*Index)(nil)
