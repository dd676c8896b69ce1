// Package termdict implements the sorted term dictionary of a segment: an
// immutable byte-string-keyed map supporting random lookup and ordered
// streaming.
//
// Keys live in an FST (finite state transducer) whose outputs are offsets
// into a value blob appended behind it. The on-disk layout is
//
//	[FST bytes][value blob][4-byte little-endian value-blob length]
//
// so a reader recovers the FST/blob split from the trailing 4 bytes without
// a leading header. The dictionary is built exactly once, in ascending key
// order, and reopened read-only for the lifetime of the segment.
package termdict

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/blevesearch/vellum"

	"github.com/ColinClark/tantivy/codec"
)

var (
	// ErrOutOfOrder is returned when a key is inserted that is not
	// strictly greater than every previously inserted key. Duplicate
	// keys are out of order.
	ErrOutOfOrder = errors.New("termdict: keys must be inserted in strictly ascending order")

	// ErrBuilderFinished is returned when a builder is used after Finish.
	ErrBuilderFinished = errors.New("termdict: builder already finished")

	// ErrCorrupt is returned when a dictionary cannot be opened because
	// its footer or FST section is malformed.
	ErrCorrupt = errors.New("termdict: corrupt dictionary")
)

// footerLen is the size of the trailing value-blob length field.
const footerLen = 4

// Builder writes a term dictionary to a byte sink. Keys must be inserted
// in strictly ascending lexicographic byte order. A Builder is single-use:
// after Finish it cannot accept further inserts.
type Builder[V any] struct {
	w        io.Writer
	fst      *vellum.Builder
	codec    codec.Codec[V]
	values   []byte
	lastKey  []byte
	hasLast  bool
	finished bool
}

// NewBuilder starts a dictionary targeting w. FST bytes are streamed to w
// as keys are inserted; the value blob is buffered until Finish.
func NewBuilder[V any](w io.Writer, c codec.Codec[V]) (*Builder[V], error) {
	fst, err := vellum.New(w, nil)
	if err != nil {
		return nil, fmt.Errorf("termdict: start fst builder: %w", err)
	}
	return &Builder[V]{w: w, fst: fst, codec: c}, nil
}

// Insert records key with the given value. key must be strictly greater
// than every previously inserted key; otherwise ErrOutOfOrder is returned
// and the build is unusable for that key.
func (b *Builder[V]) Insert(key []byte, value V) error {
	if b.finished {
		return ErrBuilderFinished
	}
	if b.hasLast && bytes.Compare(key, b.lastKey) <= 0 {
		return fmt.Errorf("%w: %q inserted after %q", ErrOutOfOrder, key, b.lastKey)
	}

	if err := b.fst.Insert(key, uint64(len(b.values))); err != nil {
		if errors.Is(err, vellum.ErrOutOfOrder) {
			return fmt.Errorf("%w: %q", ErrOutOfOrder, key)
		}
		return fmt.Errorf("termdict: insert %q: %w", key, err)
	}

	b.values = b.codec.Append(b.values, value)
	b.lastKey = append(b.lastKey[:0], key...)
	b.hasLast = true
	return nil
}

// Finish seals the FST, appends the value blob and the 4-byte footer, and
// flushes the sink if it supports flushing. The builder is consumed.
func (b *Builder[V]) Finish() error {
	if b.finished {
		return ErrBuilderFinished
	}
	b.finished = true

	if err := b.fst.Close(); err != nil {
		return fmt.Errorf("termdict: seal fst: %w", err)
	}
	if _, err := b.w.Write(b.values); err != nil {
		return fmt.Errorf("termdict: write value blob: %w", err)
	}

	var footer [footerLen]byte
	binary.LittleEndian.PutUint32(footer[:], uint32(len(b.values)))
	if _, err := b.w.Write(footer[:]); err != nil {
		return fmt.Errorf("termdict: write footer: %w", err)
	}

	if f, ok := b.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}
