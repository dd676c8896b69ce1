package tantivy

// DocID is a document identifier local to one segment. Document ids are
// assigned densely from 0 within each segment.
type DocID uint32

// Score is the relevance score attached to a matching document.
type Score float32

// SegmentOrd identifies a segment by its position within an index snapshot.
type SegmentOrd uint32

// DocAddress uniquely identifies a document within a multi-segment snapshot.
// It is constructed during collection and never persisted.
type DocAddress struct {
	Segment SegmentOrd
	Doc     DocID
}
