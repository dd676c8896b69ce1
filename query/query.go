// Package query defines the match-iteration contract between queries and
// the collection framework, plus two primitive weights.
//
// Query parsing and scoring functions live outside this library; what
// collection needs is only the ability to walk a segment's matching
// documents in ascending doc-id order, scored or not.
package query

import (
	"github.com/ColinClark/tantivy"
	"github.com/ColinClark/tantivy/segment"
)

// Weight is a query bound to an index snapshot, able to produce a Scorer
// for any of its segments. Weights are shared read-only across the
// per-segment tasks of one query.
type Weight interface {
	// Scorer returns the matching-document iterator for one segment.
	Scorer(reader segment.Reader) (Scorer, error)
}

// Scorer iterates one segment's matching documents in ascending doc-id
// order.
type Scorer interface {
	// Next advances to the next match, returning false when exhausted.
	Next() bool

	// Doc returns the current match. Only valid after Next returned true.
	Doc() tantivy.DocID

	// Score returns the current match's score.
	Score() tantivy.Score
}
