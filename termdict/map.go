package termdict

import (
	"encoding/binary"
	"fmt"

	"github.com/blevesearch/vellum"

	"github.com/ColinClark/tantivy/codec"
	"github.com/ColinClark/tantivy/directory"
)

// Map is a read-only term dictionary. It is safe for unbounded concurrent
// use: the FST and value blob are immutable after Open.
type Map[V any] struct {
	fst    *vellum.FST
	values directory.ReadOnlySource
	codec  codec.Codec[V]
}

// Open parses a dictionary from src. The final 4 bytes give the value-blob
// length; everything before the blob is the FST. Open returns ErrCorrupt
// if src is shorter than the footer, if the recorded blob length exceeds
// the source, or if the FST section fails to parse.
//
// src must stay open for the lifetime of the Map.
func Open[V any](src directory.ReadOnlySource, c codec.Codec[V]) (*Map[V], error) {
	if src.Len() < footerLen {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d for footer", ErrCorrupt, src.Len(), footerLen)
	}

	footer := src.Slice(src.Len()-footerLen, src.Len()).Bytes()
	blobLen := int(binary.LittleEndian.Uint32(footer))
	split := src.Len() - footerLen - blobLen
	if split < 0 {
		return nil, fmt.Errorf("%w: value blob length %d exceeds source size %d", ErrCorrupt, blobLen, src.Len())
	}

	fst, err := vellum.Load(src.Slice(0, split).Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: load fst: %v", ErrCorrupt, err)
	}

	return &Map[V]{
		fst:    fst,
		values: src.Slice(split, src.Len()-footerLen),
		codec:  c,
	}, nil
}

// Get returns the value stored under key. A missing key is not an error:
// it yields the zero value and false. Lookup cost is proportional to the
// key length, not to the dictionary size.
func (m *Map[V]) Get(key []byte) (V, bool, error) {
	var zero V

	offset, ok, err := m.fst.Get(key)
	if err != nil {
		return zero, false, fmt.Errorf("termdict: get %q: %w", key, err)
	}
	if !ok {
		return zero, false, nil
	}

	v, err := m.readValue(offset)
	if err != nil {
		return zero, false, err
	}
	return v, true, nil
}

// Len returns the number of terms in the dictionary.
func (m *Map[V]) Len() int {
	return m.fst.Len()
}

func (m *Map[V]) readValue(offset uint64) (V, error) {
	var zero V

	blob := m.values.Bytes()
	if offset > uint64(len(blob)) {
		return zero, fmt.Errorf("%w: value offset %d beyond blob of %d bytes", ErrCorrupt, offset, len(blob))
	}
	v, err := m.codec.Read(blob[offset:])
	if err != nil {
		return zero, fmt.Errorf("termdict: decode value at offset %d: %w", offset, err)
	}
	return v, nil
}
