package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/viant/parlgraph/dataset"
	"github.com/viant/parlgraph/index"
	"github.com/viant/parlgraph/index/bruteforce"
	"golang.org/x/sync/errgroup"
)

// DefaultK is the number of neighbors returned when callers have no preference.
const DefaultK = 5

// ErrSubjectNotFound is returned when the queried name has no index entry.
var ErrSubjectNotFound = errors.New("query: subject not found")

// Neighbor is one enriched similarity hit. Agreement is nil when no edge
// links the neighbor to the subject.
type Neighbor struct {
	Name       string   `json:"name"`
	Similarity float64  `json:"similarity"`
	Sector     string   `json:"sector"`
	Agreement  *float64 `json:"agreement_proportion,omitempty"`
}

// Result is the answer to a single query.
type Result struct {
	Subject   string     `json:"subject"`
	Sector    string     `json:"sector"`
	Neighbors []Neighbor `json:"neighbors"`
}

// Service answers similarity queries over an immutable dataset. It holds no
// per-query state and is safe for concurrent use.
type Service struct {
	ds      *dataset.Dataset
	ranker  index.Ranker
	logger  *slog.Logger
	workers int
}

// Option customises a Service.
type Option func(*Service)

// WithRanker replaces the default brute-force ranker.
func WithRanker(r index.Ranker) Option { return func(s *Service) { s.ranker = r } }

// WithLogger sets the logger used for enrichment gaps.
func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.logger = l } }

// WithWorkers bounds the parallelism of QueryAll. Values below 1 mean one.
func WithWorkers(n int) Option { return func(s *Service) { s.workers = n } }

// New creates a Service over ds.
func New(ds *dataset.Dataset, opts ...Option) (*Service, error) {
	if ds == nil {
		return nil, fmt.Errorf("query: dataset is nil")
	}
	s := &Service{ds: ds, workers: 1}
	for _, opt := range opts {
		opt(s)
	}
	if s.ranker == nil {
		s.ranker = bruteforce.New(ds.Rows())
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.workers < 1 {
		s.workers = 1
	}
	return s, nil
}

// Dataset returns the dataset the service queries.
func (s *Service) Dataset() *dataset.Dataset { return s.ds }

// Query returns the sector of subject and its k most similar parliamentarians.
// Structural failures (unknown subject, malformed embeddings, negative k)
// abort the query; missing node or edge records only blank the affected fields.
func (s *Service) Query(ctx context.Context, subject string, k int) (*Result, error) {
	row, err := s.ds.ResolveIndex(subject)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrSubjectNotFound, subject)
	}
	if _, err := s.ds.EmbeddingOf(row); err != nil {
		return nil, fmt.Errorf("query: %w: subject %q: %v", index.ErrMalformedEmbedding, subject, err)
	}
	ranked, err := s.ranker.Rank(ctx, row, k)
	if err != nil {
		return nil, fmt.Errorf("query: subject %q: %w", subject, err)
	}
	result := &Result{
		Subject:   subject,
		Sector:    s.sectorOf(subject),
		Neighbors: s.enrich(subject, ranked),
	}
	return result, nil
}

// QueryAll runs Query for every subject with at most the configured number of
// workers. Results keep the order of subjects; the first error cancels the
// remaining queries and is returned.
func (s *Service) QueryAll(ctx context.Context, subjects []string, k int) ([]*Result, error) {
	results := make([]*Result, len(subjects))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, subject := range subjects {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := s.Query(ctx, subject, k)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) sectorOf(name string) string {
	node, err := s.ds.NodeByName(name)
	if err != nil {
		s.logger.Warn("missing node record", "name", name)
		return ""
	}
	return node.Sector
}
