// Package collector defines how query results are accumulated per segment
// and merged into a final result.
//
// A Collector is built once per query and shared read-only across all
// per-segment tasks. For every segment it instantiates a SegmentCollector,
// which is owned and mutated by exactly one task, fed every matching
// document in ascending doc-id order, and finally harvested into a Fruit.
// MergeFruits combines the per-segment Fruits.
//
// The executor delivers Fruits to MergeFruits in completion order, which
// carries no relationship to segment identity. Any collector that must
// preserve cross-segment document ordering has to re-establish it from
// data inside the Fruits themselves; DocCollector shows the conventional
// way (sort children by the segment ordinal of their first document,
// empty children first).
package collector

import (
	"github.com/ColinClark/tantivy"
	"github.com/ColinClark/tantivy/segment"
)

// Collector is the query-scoped half of the collection contract. Fruit F
// is the per-segment and final result type. Implementations must be
// immutable once the query starts: all per-segment state belongs in the
// SegmentCollector.
type Collector[F any] interface {
	// ForSegment instantiates the per-segment child. Failure here (for
	// example a missing fast-field column) aborts the entire query; no
	// partial results are produced.
	ForSegment(ord tantivy.SegmentOrd, reader segment.Reader) (SegmentCollector[F], error)

	// RequiresScoring reports whether matching documents need a
	// relevance score. It is pure and constant for the query's lifetime.
	// When false, the score passed to Collect is unspecified and may be
	// a cheap constant.
	RequiresScoring() bool

	// MergeFruits combines the per-segment Fruits into the final result.
	// children arrive in no particular order.
	MergeFruits(children []F) F
}

// SegmentCollector accumulates one segment's share of the result. It is
// single-use: after Harvest it must not be touched again.
type SegmentCollector[F any] interface {
	// Collect is invoked once per matching document, in ascending doc-id
	// order. score is meaningful only if the owning Collector's
	// RequiresScoring returned true.
	Collect(doc tantivy.DocID, score tantivy.Score)

	// Harvest consumes the collector and returns its Fruit.
	Harvest() F
}
