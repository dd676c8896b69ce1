// Package segment defines the per-segment reader surface consumed by the
// collection framework.
package segment

import (
	"fmt"

	"github.com/ColinClark/tantivy"
	"github.com/ColinClark/tantivy/fastfield"
)

// ErrUnknownField indicates that a requested fast field is not configured
// on the segment. A collector that needs such a field fails its whole
// query when it hits this at segment setup.
type ErrUnknownField struct {
	Field string
}

func (e *ErrUnknownField) Error() string {
	return fmt.Sprintf("segment: no fast field %q", e.Field)
}

// Reader exposes one immutable segment to collection code. Implementations
// must be safe for concurrent use; all methods are read-only.
type Reader interface {
	// MaxDoc returns the exclusive upper bound of the segment's document
	// ids: valid ids are 0 <= doc < MaxDoc().
	MaxDoc() tantivy.DocID

	// FastFieldReader returns the u64 fast-field column for field, or an
	// error if the field is absent or not a u64 column.
	FastFieldReader(field string) (fastfield.U64Reader, error)

	// BytesFastFieldReader returns the byte-blob fast-field column for
	// field, or an error if the field is absent or not a bytes column.
	BytesFastFieldReader(field string) (fastfield.BytesReader, error)
}
