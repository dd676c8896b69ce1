package collector

import (
	"github.com/ColinClark/tantivy"
	"github.com/ColinClark/tantivy/fastfield"
	"github.com/ColinClark/tantivy/segment"
)

// FastFieldCollector gathers, for every matching document, one u64 value
// from the named fast-field column. The merge flattens the per-segment
// slices in the order the children are given, with no re-sorting.
type FastFieldCollector struct {
	Field string
}

// ForSegment implements Collector. It fails if the segment lacks the
// configured column, aborting the whole query.
func (c FastFieldCollector) ForSegment(_ tantivy.SegmentOrd, reader segment.Reader) (SegmentCollector[[]uint64], error) {
	r, err := reader.FastFieldReader(c.Field)
	if err != nil {
		return nil, err
	}
	return &fastFieldSegmentCollector{reader: r}, nil
}

// RequiresScoring implements Collector.
func (FastFieldCollector) RequiresScoring() bool { return false }

// MergeFruits implements Collector.
func (FastFieldCollector) MergeFruits(children [][]uint64) []uint64 {
	var merged []uint64
	for _, child := range children {
		merged = append(merged, child...)
	}
	return merged
}

type fastFieldSegmentCollector struct {
	reader fastfield.U64Reader
	vals   []uint64
}

func (c *fastFieldSegmentCollector) Collect(doc tantivy.DocID, _ tantivy.Score) {
	c.vals = append(c.vals, c.reader.Get(doc))
}

func (c *fastFieldSegmentCollector) Harvest() []uint64 {
	return c.vals
}

// BytesFastFieldCollector gathers the raw variable-length bytes of the
// named byte-blob column for every matching document, appended without
// length framing into one per-segment buffer. The merge concatenates the
// buffers in the order the children are given.
type BytesFastFieldCollector struct {
	Field string
}

// ForSegment implements Collector. It fails if the segment lacks the
// configured column, aborting the whole query.
func (c BytesFastFieldCollector) ForSegment(_ tantivy.SegmentOrd, reader segment.Reader) (SegmentCollector[[]byte], error) {
	r, err := reader.BytesFastFieldReader(c.Field)
	if err != nil {
		return nil, err
	}
	return &bytesFastFieldSegmentCollector{reader: r}, nil
}

// RequiresScoring implements Collector.
func (BytesFastFieldCollector) RequiresScoring() bool { return false }

// MergeFruits implements Collector.
func (BytesFastFieldCollector) MergeFruits(children [][]byte) []byte {
	var merged []byte
	for _, child := range children {
		merged = append(merged, child...)
	}
	return merged
}

type bytesFastFieldSegmentCollector struct {
	reader fastfield.BytesReader
	buf    []byte
}

func (c *bytesFastFieldSegmentCollector) Collect(doc tantivy.DocID, _ tantivy.Score) {
	c.buf = append(c.buf, c.reader.Get(doc)...)
}

func (c *bytesFastFieldSegmentCollector) Harvest() []byte {
	return c.buf
}
