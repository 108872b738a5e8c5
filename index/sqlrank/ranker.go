package sqlrank

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/viant/parlgraph/index"
)

const (
	subjectQuery = `SELECT embedding FROM parl_embeddings WHERE row_index = ?`
	raggedQuery  = `SELECT row_index, COALESCE(length(embedding), 0) FROM parl_embeddings
WHERE row_index != ? AND COALESCE(length(embedding), 0) != ?
ORDER BY row_index LIMIT 1`
	rankQuery = `SELECT row_index, vec_cosine(embedding, ?) AS score FROM parl_embeddings
WHERE row_index != ?
ORDER BY score DESC, row_index ASC
LIMIT ?`
)

// Ranker ranks rows stored in a snapshot database. The database must be
// opened with engine.OpenWithFunctions so vec_cosine is available.
type Ranker struct {
	db *sql.DB
}

// New creates a Ranker over db.
func New(db *sql.DB) (*Ranker, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlrank: db is nil")
	}
	return &Ranker{db: db}, nil
}

// Rank returns the top-k rows by cosine similarity to subject, excluding
// subject.
func (r *Ranker) Rank(ctx context.Context, subject int, k int) ([]index.Neighbor, error) {
	if k < 0 {
		return nil, fmt.Errorf("sqlrank: %w: %d", index.ErrInvalidK, k)
	}
	var query []byte
	err := r.db.QueryRowContext(ctx, subjectQuery, subject).Scan(&query)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlrank: %w: subject row %d not found", index.ErrMalformedEmbedding, subject)
	}
	if err != nil {
		return nil, err
	}
	if len(query) == 0 {
		return nil, fmt.Errorf("sqlrank: %w: subject row %d is empty", index.ErrMalformedEmbedding, subject)
	}

	var badRow, badLen int
	err = r.db.QueryRowContext(ctx, raggedQuery, subject, len(query)).Scan(&badRow, &badLen)
	switch {
	case err == nil:
		return nil, fmt.Errorf("sqlrank: %w: row %d has %d bytes, want %d", index.ErrMalformedEmbedding, badRow, badLen, len(query))
	case !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}

	out := []index.Neighbor{}
	if k == 0 {
		return out, nil
	}
	rows, err := r.db.QueryContext(ctx, rankQuery, query, subject, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var n index.Neighbor
		if err := rows.Scan(&n.Index, &n.Score); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ index.Ranker = (*Ranker)(nil)
