package store

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

// DefaultBlockSize is the uncompressed block-size threshold at which a
// block is compressed and flushed.
const DefaultBlockSize = 16 << 10

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithBlockSize sets the uncompressed block-size threshold in bytes.
func WithBlockSize(n int) WriterOption {
	return func(w *Writer) {
		if n > 0 {
			w.blockSize = n
		}
	}
}

// WithCompressor selects the block compressor. The default is LZ4.
func WithCompressor(c Compressor) WriterOption {
	return func(w *Writer) {
		if c != nil {
			w.comp = c
		}
	}
}

// Writer builds a record store. Records receive densely increasing ids
// starting at 0, in Store order. A Writer is single-use: after Finish it
// accepts no further records.
type Writer struct {
	w         io.Writer
	comp      Compressor
	blockSize int

	block      []byte
	blockFirst uint32
	next       uint32
	written    uint64
	index      []blockEntry
	finished   bool
}

// NewWriter starts a store targeting w.
func NewWriter(w io.Writer, opts ...WriterOption) *Writer {
	sw := &Writer{w: w, comp: LZ4(), blockSize: DefaultBlockSize}
	for _, opt := range opts {
		opt(sw)
	}
	return sw
}

// Store appends one record and returns its id.
func (w *Writer) Store(record []byte) (uint32, error) {
	if w.finished {
		return 0, ErrWriterFinished
	}

	if len(w.block) == 0 {
		w.blockFirst = w.next
	}
	w.block = binary.AppendUvarint(w.block, uint64(len(record)))
	w.block = append(w.block, record...)

	id := w.next
	w.next++

	if len(w.block) >= w.blockSize {
		if err := w.flushBlock(); err != nil {
			return 0, err
		}
	}
	return id, nil
}

// Finish flushes the last block, writes the skip index and footer, and
// flushes the sink if it supports flushing. The writer is consumed.
func (w *Writer) Finish() error {
	if w.finished {
		return ErrWriterFinished
	}
	w.finished = true

	if len(w.block) > 0 {
		if err := w.flushBlock(); err != nil {
			return err
		}
	}

	indexOffset := w.written
	idx := make([]byte, 0, 4+len(w.index)*blockEntryLen+4)
	idx = binary.LittleEndian.AppendUint32(idx, uint32(len(w.index)))
	for _, e := range w.index {
		idx = binary.LittleEndian.AppendUint64(idx, e.offset)
		idx = binary.LittleEndian.AppendUint32(idx, e.firstRecord)
	}
	idx = binary.LittleEndian.AppendUint32(idx, w.next)
	if _, err := w.w.Write(idx); err != nil {
		return fmt.Errorf("store: write index: %w", err)
	}

	var footer [footerLen]byte
	binary.LittleEndian.PutUint64(footer[0:], indexOffset)
	footer[8] = w.comp.ID()
	binary.LittleEndian.PutUint32(footer[9:], crc32.Checksum(idx, castagnoli))
	binary.LittleEndian.PutUint32(footer[13:], magicNumber)
	if _, err := w.w.Write(footer[:]); err != nil {
		return fmt.Errorf("store: write footer: %w", err)
	}

	if f, ok := w.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (w *Writer) flushBlock() error {
	compressed, err := w.comp.Compress(w.block)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(compressed); err != nil {
		return fmt.Errorf("store: write block: %w", err)
	}
	w.index = append(w.index, blockEntry{offset: w.written, firstRecord: w.blockFirst})
	w.written += uint64(len(compressed))
	w.block = w.block[:0]
	return nil
}
