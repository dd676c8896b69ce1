// Package searcher runs a query's collection phase across the segments of
// an index snapshot: one task per segment on an executor, then a single
// merge of the per-segment Fruits.
package searcher

import (
	"log/slog"
	"time"

	"github.com/ColinClark/tantivy"
	"github.com/ColinClark/tantivy/collector"
	"github.com/ColinClark/tantivy/executor"
	"github.com/ColinClark/tantivy/query"
	"github.com/ColinClark/tantivy/segment"
)

// Searcher is a read-only view over the segments of one index snapshot.
// The executor is owned by the caller and may be shared between searchers;
// the searcher adds no per-query state of its own.
type Searcher struct {
	exec     *executor.Executor
	segments []segment.Reader
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger enables debug logging of query execution.
func WithLogger(l *slog.Logger) Option {
	return func(s *Searcher) { s.logger = l }
}

// New creates a searcher over segments, in ordinal order. Segment ordinal
// i is segments[i].
func New(exec *executor.Executor, segments []segment.Reader, opts ...Option) *Searcher {
	s := &Searcher{exec: exec, segments: segments}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SegmentReaders returns the snapshot's segment readers in ordinal order.
func (s *Searcher) SegmentReaders() []segment.Reader {
	return s.segments
}

type segmentJob struct {
	ord    tantivy.SegmentOrd
	reader segment.Reader
}

// Search feeds every document matched by w through c, one task per segment
// on the searcher's executor, and returns the merged Fruit.
//
// Any failure — a collector that cannot set up for a segment, a scorer
// error, or a task fault — aborts the whole query: Search returns a single
// terminal error and no merged result.
func Search[F any](s *Searcher, w query.Weight, c collector.Collector[F]) (F, error) {
	var zero F
	start := time.Now()

	jobs := make([]segmentJob, len(s.segments))
	for i, reader := range s.segments {
		jobs[i] = segmentJob{ord: tantivy.SegmentOrd(i), reader: reader}
	}

	scoring := c.RequiresScoring()
	fruits, err := executor.Map(s.exec, func(job segmentJob) (F, error) {
		return collectSegment(job, w, c, scoring)
	}, jobs)
	if err != nil {
		return zero, err
	}

	fruit := c.MergeFruits(fruits)
	if s.logger != nil {
		s.logger.Debug("search completed",
			"segments", len(jobs),
			"scoring", scoring,
			"duration", time.Since(start),
		)
	}
	return fruit, nil
}

func collectSegment[F any](job segmentJob, w query.Weight, c collector.Collector[F], scoring bool) (F, error) {
	var zero F

	child, err := c.ForSegment(job.ord, job.reader)
	if err != nil {
		return zero, err
	}
	scorer, err := w.Scorer(job.reader)
	if err != nil {
		return zero, err
	}

	for scorer.Next() {
		// When the collector does not score, skip the score computation
		// and hand it a constant.
		score := tantivy.Score(1)
		if scoring {
			score = scorer.Score()
		}
		child.Collect(scorer.Doc(), score)
	}
	return child.Harvest(), nil
}
