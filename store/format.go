// Package store implements a block-compressed, append-only record store
// with random access by record id, such as a segment's stored-document
// file.
//
// Records are concatenated with uvarint length prefixes into blocks; each
// block is compressed independently so a point read decompresses one block
// only. A skip index of (block offset, first record id) pairs follows the
// blocks, then a fixed footer:
//
//	[blocks...][index][index offset u64][compressor id u8][index CRC-32C u32][magic u32]
//
// The index checksum and magic let a reader reject truncated or foreign
// files at open time.
package store

import "errors"

var (
	// ErrCorrupt is returned when a store cannot be opened or read
	// because its footer, index, or a block is malformed.
	ErrCorrupt = errors.New("store: corrupt store")

	// ErrNotFound is returned when a record id is out of range.
	ErrNotFound = errors.New("store: no such record")

	// ErrWriterFinished is returned when a writer is used after Finish.
	ErrWriterFinished = errors.New("store: writer already finished")
)

const (
	magicNumber = 0x53544f31 // "STO1"

	// footer: index offset + compressor id + index checksum + magic.
	footerLen = 8 + 1 + 4 + 4

	// index entry: block offset + first record id.
	blockEntryLen = 8 + 4
)

type blockEntry struct {
	offset      uint64
	firstRecord uint32
}
