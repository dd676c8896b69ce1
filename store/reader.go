package store

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"sort"
	"sync"

	"github.com/ColinClark/tantivy/directory"
)

// Reader provides random access to a finished record store. Safe for
// concurrent use.
type Reader struct {
	src         directory.ReadOnlySource
	comp        Compressor
	entries     []blockEntry
	indexOffset uint64
	numRecords  uint32

	// Single-block cache: point reads cluster within a block far more
	// often than across blocks.
	mu        sync.Mutex
	cachedIdx int
	cached    []byte
}

// OpenReader validates the footer and skip index of src. It returns
// ErrCorrupt if the magic, checksum, or index layout is wrong.
//
// src must stay open for the lifetime of the Reader.
func OpenReader(src directory.ReadOnlySource) (*Reader, error) {
	if src.Len() < footerLen {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d for footer", ErrCorrupt, src.Len(), footerLen)
	}

	footer := src.Slice(src.Len()-footerLen, src.Len()).Bytes()
	if binary.LittleEndian.Uint32(footer[13:]) != magicNumber {
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	indexOffset := binary.LittleEndian.Uint64(footer)
	wantSum := binary.LittleEndian.Uint32(footer[9:])

	comp, err := compressorByID(footer[8])
	if err != nil {
		return nil, err
	}

	if indexOffset > uint64(src.Len()-footerLen) {
		return nil, fmt.Errorf("%w: index offset %d beyond file", ErrCorrupt, indexOffset)
	}
	idx := src.Slice(int(indexOffset), src.Len()-footerLen).Bytes()
	if crc32.Checksum(idx, castagnoli) != wantSum {
		return nil, fmt.Errorf("%w: index checksum mismatch", ErrCorrupt)
	}
	if len(idx) < 8 {
		return nil, fmt.Errorf("%w: index too short", ErrCorrupt)
	}

	count := int(binary.LittleEndian.Uint32(idx))
	if len(idx) != 4+count*blockEntryLen+4 {
		return nil, fmt.Errorf("%w: index length %d does not match %d blocks", ErrCorrupt, len(idx), count)
	}

	entries := make([]blockEntry, count)
	for i := range entries {
		base := 4 + i*blockEntryLen
		entries[i] = blockEntry{
			offset:      binary.LittleEndian.Uint64(idx[base:]),
			firstRecord: binary.LittleEndian.Uint32(idx[base+8:]),
		}
	}
	numRecords := binary.LittleEndian.Uint32(idx[4+count*blockEntryLen:])

	return &Reader{
		src:         src,
		comp:        comp,
		entries:     entries,
		indexOffset: indexOffset,
		numRecords:  numRecords,
		cachedIdx:   -1,
	}, nil
}

// NumRecords returns the number of records in the store.
func (r *Reader) NumRecords() uint32 { return r.numRecords }

// CompressorName returns the name of the compressor the store was written
// with.
func (r *Reader) CompressorName() string { return r.comp.Name() }

// Get returns a copy of the record with the given id, or ErrNotFound if id
// is out of range.
func (r *Reader) Get(id uint32) ([]byte, error) {
	if id >= r.numRecords {
		return nil, fmt.Errorf("%w: record %d of %d", ErrNotFound, id, r.numRecords)
	}

	// Last block whose first record is <= id.
	blockIdx := sort.Search(len(r.entries), func(i int) bool {
		return r.entries[i].firstRecord > id
	}) - 1
	if blockIdx < 0 {
		return nil, fmt.Errorf("%w: no block for record %d", ErrCorrupt, id)
	}

	block, err := r.block(blockIdx)
	if err != nil {
		return nil, err
	}

	rec := r.entries[blockIdx].firstRecord
	pos := 0
	for {
		n, sz := binary.Uvarint(block[pos:])
		if sz <= 0 || pos+sz+int(n) > len(block) {
			return nil, fmt.Errorf("%w: record %d framing", ErrCorrupt, rec)
		}
		pos += sz
		if rec == id {
			out := make([]byte, n)
			copy(out, block[pos:pos+int(n)])
			return out, nil
		}
		pos += int(n)
		rec++
	}
}

func (r *Reader) block(i int) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cachedIdx == i {
		return r.cached, nil
	}

	start := r.entries[i].offset
	end := r.indexOffset
	if i+1 < len(r.entries) {
		end = r.entries[i+1].offset
	}
	if start > end || end > uint64(r.src.Len()) {
		return nil, fmt.Errorf("%w: block %d bounds", ErrCorrupt, i)
	}

	block, err := r.comp.Decompress(r.src.Slice(int(start), int(end)).Bytes())
	if err != nil {
		return nil, err
	}
	r.cachedIdx = i
	r.cached = block
	return block, nil
}
