package collector

import (
	"cmp"
	"slices"

	"github.com/ColinClark/tantivy"
	"github.com/ColinClark/tantivy/segment"
)

// CollectedDocs holds every collected document address with its score, as
// parallel slices in collection order.
type CollectedDocs struct {
	Docs   []tantivy.DocAddress
	Scores []tantivy.Score
}

// DocCollector collects the address and score of every matching document.
//
// Because per-segment Fruits arrive in completion order, the merge sorts
// children by the segment ordinal of their first document (children with
// no documents sort first) before concatenating, so the merged result is
// ordered by segment, then by doc id within each segment.
type DocCollector struct{}

// ForSegment implements Collector.
func (DocCollector) ForSegment(ord tantivy.SegmentOrd, _ segment.Reader) (SegmentCollector[CollectedDocs], error) {
	return &docSegmentCollector{ord: ord}, nil
}

// RequiresScoring implements Collector. DocCollector always scores.
func (DocCollector) RequiresScoring() bool { return true }

// MergeFruits implements Collector.
func (DocCollector) MergeFruits(children []CollectedDocs) CollectedDocs {
	slices.SortStableFunc(children, func(a, b CollectedDocs) int {
		return cmp.Compare(firstSegmentOrd(a), firstSegmentOrd(b))
	})

	var merged CollectedDocs
	for _, child := range children {
		merged.Docs = append(merged.Docs, child.Docs...)
		merged.Scores = append(merged.Scores, child.Scores...)
	}
	return merged
}

func firstSegmentOrd(f CollectedDocs) tantivy.SegmentOrd {
	if len(f.Docs) == 0 {
		return 0
	}
	return f.Docs[0].Segment
}

type docSegmentCollector struct {
	ord   tantivy.SegmentOrd
	fruit CollectedDocs
}

func (c *docSegmentCollector) Collect(doc tantivy.DocID, score tantivy.Score) {
	c.fruit.Docs = append(c.fruit.Docs, tantivy.DocAddress{Segment: c.ord, Doc: doc})
	c.fruit.Scores = append(c.fruit.Scores, score)
}

func (c *docSegmentCollector) Harvest() CollectedDocs {
	return c.fruit
}
