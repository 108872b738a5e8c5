package bruteforce

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/parlgraph/index"
	"github.com/viant/parlgraph/vector"
)

func TestIndex_Rank(t *testing.T) {
	rows := [][]float64{{1, 0}, {1, 0}, {0, 1}, {-1, 0}}
	ix := New(rows)

	var testCases = []struct {
		description string
		subject     int
		k           int
		expect      []index.Neighbor
	}{
		{
			description: "top two",
			subject:     0,
			k:           2,
			expect:      []index.Neighbor{{Index: 1, Score: 1}, {Index: 2, Score: 0}},
		},
		{
			description: "k beyond rows",
			subject:     0,
			k:           10,
			expect:      []index.Neighbor{{Index: 1, Score: 1}, {Index: 2, Score: 0}, {Index: 3, Score: -1}},
		},
		{
			description: "zero k",
			subject:     2,
			k:           0,
			expect:      []index.Neighbor{},
		},
		{
			description: "ties by ascending row",
			subject:     2,
			k:           3,
			expect:      []index.Neighbor{{Index: 0, Score: 0}, {Index: 1, Score: 0}, {Index: 3, Score: 0}},
		},
	}

	for _, testCase := range testCases {
		actual, err := ix.Rank(context.Background(), testCase.subject, testCase.k)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestIndex_Rank_ZeroNorm(t *testing.T) {
	ix := New([][]float64{{0, 0}, {1, 1}, {2, 0}})

	actual, err := ix.Rank(context.Background(), 0, 5)
	require.NoError(t, err)
	assert.Equal(t, []index.Neighbor{{Index: 1, Score: 0}, {Index: 2, Score: 0}}, actual)

	actual, err = ix.Rank(context.Background(), 2, 5)
	require.NoError(t, err)
	require.Len(t, actual, 2)
	assert.Equal(t, 1, actual[0].Index)
	assert.InDelta(t, math.Sqrt2/2, actual[0].Score, 1e-12)
	assert.Equal(t, index.Neighbor{Index: 0, Score: 0}, actual[1])
	for _, n := range actual {
		assert.False(t, math.IsNaN(n.Score))
	}
}

func TestIndex_Rank_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := New([][]float64{{1}, {2}}).Rank(ctx, 0, -1)
	assert.ErrorIs(t, err, index.ErrInvalidK)

	_, err = New([][]float64{{1}, {2}}).Rank(ctx, 2, 1)
	assert.ErrorIs(t, err, index.ErrMalformedEmbedding)

	_, err = New([][]float64{{1, 0}, {1}}).Rank(ctx, 0, 1)
	assert.ErrorIs(t, err, index.ErrMalformedEmbedding)

	_, err = New([][]float64{{}, {1}}).Rank(ctx, 0, 1)
	assert.ErrorIs(t, err, index.ErrMalformedEmbedding)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = New([][]float64{{1}, {2}}).Rank(cancelled, 0, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIndex_Rank_MatchesFullSort(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	const n, dim = 200, 8
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, dim)
		for j := range rows[i] {
			// coarse values force exact ties
			rows[i][j] = float64(rnd.Intn(3) - 1)
		}
	}
	ix := New(rows)

	for _, subject := range []int{0, 17, 199} {
		for _, k := range []int{1, 5, 50, n} {
			var want []index.Neighbor
			for j := range rows {
				if j == subject {
					continue
				}
				s := vector.CosineWithMagnitude(rows[subject], vector.Magnitude(rows[subject]), rows[j], vector.Magnitude(rows[j]))
				want = append(want, index.Neighbor{Index: j, Score: s})
			}
			sort.SliceStable(want, func(a, b int) bool { return index.Less(want[a], want[b]) })
			if k < len(want) {
				want = want[:k]
			}

			got, err := ix.Rank(context.Background(), subject, k)
			require.NoError(t, err)
			assert.Equal(t, want, got, "subject=%d k=%d", subject, k)
			for p := 1; p < len(got); p++ {
				assert.GreaterOrEqual(t, got[p-1].Score, got[p].Score)
			}
		}
	}
}
