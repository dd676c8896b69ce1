package segment

import (
	"github.com/ColinClark/tantivy"
	"github.com/ColinClark/tantivy/fastfield"
)

// MemReader is an in-memory Reader backed by registered columns. It exists
// for tests and for embedding segments built on the fly.
type MemReader struct {
	maxDoc tantivy.DocID
	u64s   map[string]fastfield.U64Column
	blobs  map[string]fastfield.BytesColumn
}

// NewMemReader creates a segment reader over maxDoc documents with no
// columns registered.
func NewMemReader(maxDoc tantivy.DocID) *MemReader {
	return &MemReader{
		maxDoc: maxDoc,
		u64s:   make(map[string]fastfield.U64Column),
		blobs:  make(map[string]fastfield.BytesColumn),
	}
}

// AddU64Field registers a u64 column under field. len(values) must equal
// MaxDoc. It returns the reader for chaining.
func (r *MemReader) AddU64Field(field string, values []uint64) *MemReader {
	r.u64s[field] = fastfield.U64Column(values)
	return r
}

// AddBytesField registers a byte-blob column under field. len(values) must
// equal MaxDoc. It returns the reader for chaining.
func (r *MemReader) AddBytesField(field string, values [][]byte) *MemReader {
	r.blobs[field] = fastfield.BytesColumn(values)
	return r
}

// MaxDoc implements Reader.
func (r *MemReader) MaxDoc() tantivy.DocID { return r.maxDoc }

// FastFieldReader implements Reader.
func (r *MemReader) FastFieldReader(field string) (fastfield.U64Reader, error) {
	col, ok := r.u64s[field]
	if !ok {
		return nil, &ErrUnknownField{Field: field}
	}
	return col, nil
}

// BytesFastFieldReader implements Reader.
func (r *MemReader) BytesFastFieldReader(field string) (fastfield.BytesReader, error) {
	col, ok := r.blobs[field]
	if !ok {
		return nil, &ErrUnknownField{Field: field}
	}
	return col, nil
}
