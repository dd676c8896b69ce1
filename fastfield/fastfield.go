// Package fastfield defines the narrow column-reader interfaces through
// which collectors access per-document values, plus in-memory columns
// implementing them.
//
// A fast field is a column-oriented store keyed by segment-local document
// id, consulted without touching the inverted index. The encoders behind
// the on-disk columns live outside this library; collection code only ever
// sees the get-by-doc-id surface below.
package fastfield

import (
	"github.com/ColinClark/tantivy"
)

// U64Reader provides random access to a fixed-width unsigned 64-bit column.
type U64Reader interface {
	// Get returns the column value for doc. doc must be a valid document
	// id of the owning segment.
	Get(doc tantivy.DocID) uint64
}

// BytesReader provides random access to a variable-length byte column.
type BytesReader interface {
	// Get returns the raw bytes stored for doc. The returned slice must
	// not be mutated.
	Get(doc tantivy.DocID) []byte
}

// U64Column is an in-memory U64Reader indexed directly by document id.
type U64Column []uint64

// Get returns the value at doc.
func (c U64Column) Get(doc tantivy.DocID) uint64 { return c[doc] }

// BytesColumn is an in-memory BytesReader indexed directly by document id.
type BytesColumn [][]byte

// Get returns the bytes at doc.
func (c BytesColumn) Get(doc tantivy.DocID) []byte { return c[doc] }
