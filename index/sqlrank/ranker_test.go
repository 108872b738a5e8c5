package sqlrank

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/parlgraph/dataset"
	"github.com/viant/parlgraph/engine"
	"github.com/viant/parlgraph/index"
	"github.com/viant/parlgraph/index/bruteforce"
	"github.com/viant/parlgraph/snapshot"
)

func newRanker(t *testing.T, rows [][]float64) *Ranker {
	t.Helper()
	ctx := context.Background()
	db, err := engine.OpenWithFunctions(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := snapshot.NewSQLiteStore(ctx, db)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, dataset.New(nil, nil, nil, rows)))

	r, err := New(db)
	require.NoError(t, err)
	return r
}

func TestRanker_Rank(t *testing.T) {
	r := newRanker(t, [][]float64{{1, 0}, {1, 0}, {0, 1}, {-1, 0}})
	ctx := context.Background()

	actual, err := r.Rank(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []index.Neighbor{{Index: 1, Score: 1}, {Index: 2, Score: 0}}, actual)

	actual, err = r.Rank(ctx, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []index.Neighbor{{Index: 0, Score: 0}, {Index: 1, Score: 0}, {Index: 3, Score: 0}}, actual)

	actual, err = r.Rank(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, actual)
}

func TestRanker_Rank_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := newRanker(t, [][]float64{{1}, {2}}).Rank(ctx, 0, -1)
	assert.ErrorIs(t, err, index.ErrInvalidK)

	_, err = newRanker(t, [][]float64{{1}, {2}}).Rank(ctx, 5, 1)
	assert.ErrorIs(t, err, index.ErrMalformedEmbedding)

	_, err = newRanker(t, [][]float64{{1, 0}, {1}}).Rank(ctx, 0, 1)
	assert.ErrorIs(t, err, index.ErrMalformedEmbedding)

	_, err = newRanker(t, [][]float64{{}, {1}}).Rank(ctx, 0, 1)
	assert.ErrorIs(t, err, index.ErrMalformedEmbedding)

	_, err = New(nil)
	assert.Error(t, err)
}

func TestRanker_MatchesBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	rows := make([][]float64, 60)
	for i := range rows {
		rows[i] = []float64{float64(rnd.Intn(5) - 2), float64(rnd.Intn(5) - 2), rnd.Float64()}
	}
	sqlRanker := newRanker(t, rows)
	brute := bruteforce.New(rows)
	ctx := context.Background()

	for _, subject := range []int{0, 31, 59} {
		want, err := brute.Rank(ctx, subject, 10)
		require.NoError(t, err)
		got, err := sqlRanker.Rank(ctx, subject, 10)
		require.NoError(t, err)
		assert.Equal(t, want, got, "subject=%d", subject)
	}
}
