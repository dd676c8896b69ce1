package store

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compressor compresses and decompresses whole blocks. Implementations
// must be self-framing: Decompress(Compress(b)) == b with no extra
// bookkeeping by the caller. Implementations must be safe for concurrent
// use.
type Compressor interface {
	// ID is the stable on-disk identifier recorded in the footer.
	ID() uint8
	// Name is the human-readable compressor name.
	Name() string
	Compress(src []byte) ([]byte, error)
	Decompress(src []byte) ([]byte, error)
}

const (
	compressorIDLZ4    = 1
	compressorIDZstd   = 2
	compressorIDSnappy = 3
)

// LZ4 returns the default block compressor.
func LZ4() Compressor { return lz4Compressor{} }

// Zstd returns a Zstandard block compressor. Better ratio than LZ4 at
// higher CPU cost.
func Zstd() Compressor { return &zstdCompressor{} }

// Snappy returns a Snappy block compressor.
func Snappy() Compressor { return snappyCompressor{} }

func compressorByID(id uint8) (Compressor, error) {
	switch id {
	case compressorIDLZ4:
		return LZ4(), nil
	case compressorIDZstd:
		return Zstd(), nil
	case compressorIDSnappy:
		return Snappy(), nil
	default:
		return nil, fmt.Errorf("%w: unknown compressor id %d", ErrCorrupt, id)
	}
}

// lz4Compressor frames blocks as
// [uncompressed length u32][raw flag u8][payload]: LZ4 block compression
// cannot recover the uncompressed size by itself, and incompressible
// blocks are stored raw.
type lz4Compressor struct{}

func (lz4Compressor) ID() uint8    { return compressorIDLZ4 }
func (lz4Compressor) Name() string { return "lz4" }

func (lz4Compressor) Compress(src []byte) ([]byte, error) {
	dst := make([]byte, 5+lz4.CompressBlockBound(len(src)))
	binary.LittleEndian.PutUint32(dst, uint32(len(src)))

	var c lz4.Compressor
	n, err := c.CompressBlock(src, dst[5:])
	if err != nil {
		return nil, fmt.Errorf("store: lz4 compress: %w", err)
	}
	if n == 0 || n >= len(src) {
		dst[4] = 0
		return append(dst[:5], src...), nil
	}
	dst[4] = 1
	return dst[:5+n], nil
}

func (lz4Compressor) Decompress(src []byte) ([]byte, error) {
	if len(src) < 5 {
		return nil, fmt.Errorf("%w: lz4 block shorter than frame header", ErrCorrupt)
	}
	rawLen := binary.LittleEndian.Uint32(src)

	if src[4] == 0 {
		if uint32(len(src)-5) != rawLen {
			return nil, fmt.Errorf("%w: stored block length mismatch", ErrCorrupt)
		}
		out := make([]byte, rawLen)
		copy(out, src[5:])
		return out, nil
	}

	out := make([]byte, rawLen)
	n, err := lz4.UncompressBlock(src[5:], out)
	if err != nil {
		return nil, fmt.Errorf("%w: lz4: %v", ErrCorrupt, err)
	}
	if uint32(n) != rawLen {
		return nil, fmt.Errorf("%w: lz4 block length mismatch", ErrCorrupt)
	}
	return out, nil
}

// zstdCompressor shares one encoder/decoder pair; both are concurrency-safe
// via EncodeAll/DecodeAll. Construction is deferred to first use.
type zstdCompressor struct {
	once sync.Once
	enc  *zstd.Encoder
	dec  *zstd.Decoder
	err  error
}

func (*zstdCompressor) ID() uint8    { return compressorIDZstd }
func (*zstdCompressor) Name() string { return "zstd" }

func (z *zstdCompressor) init() error {
	z.once.Do(func() {
		z.enc, z.err = zstd.NewWriter(nil)
		if z.err != nil {
			return
		}
		z.dec, z.err = zstd.NewReader(nil)
	})
	return z.err
}

func (z *zstdCompressor) Compress(src []byte) ([]byte, error) {
	if err := z.init(); err != nil {
		return nil, err
	}
	return z.enc.EncodeAll(src, nil), nil
}

func (z *zstdCompressor) Decompress(src []byte) ([]byte, error) {
	if err := z.init(); err != nil {
		return nil, err
	}
	out, err := z.dec.DecodeAll(src, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrCorrupt, err)
	}
	return out, nil
}

type snappyCompressor struct{}

func (snappyCompressor) ID() uint8    { return compressorIDSnappy }
func (snappyCompressor) Name() string { return "snappy" }

func (snappyCompressor) Compress(src []byte) ([]byte, error) {
	return snappy.Encode(nil, src), nil
}

func (snappyCompressor) Decompress(src []byte) ([]byte, error) {
	out, err := snappy.Decode(nil, src)
	if err != nil {
		return nil, fmt.Errorf("%w: snappy: %v", ErrCorrupt, err)
	}
	return out, nil
}
