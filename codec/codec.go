// Package codec defines how values are laid out inside append-only byte
// blobs, such as the term dictionary's value blob.
//
// The blob records no entry boundaries: a codec must therefore be either
// fixed-width or self-delimiting, i.e. able to determine its own end when
// decoding from a cursor positioned at its start offset.
package codec

import (
	"encoding/binary"
	"errors"
)

// ErrShortValue is returned when a value cannot be decoded because the
// remaining bytes are too short for it.
var ErrShortValue = errors.New("codec: value truncated")

// Codec encodes values of type V to a byte sink and decodes them from a
// byte cursor. Implementations must be safe for concurrent use.
type Codec[V any] interface {
	// Append encodes v and appends the bytes to dst, returning the
	// extended slice.
	Append(dst []byte, v V) []byte

	// Read decodes one value from data. data starts at the value's first
	// byte and extends to the end of the enclosing blob; the codec must
	// not rely on data ending where the value ends.
	Read(data []byte) (V, error)
}

// U32 is the fixed-width little-endian codec for uint32 values.
type U32 struct{}

// Append encodes v as 4 little-endian bytes.
func (U32) Append(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

// Read decodes 4 little-endian bytes.
func (U32) Read(data []byte) (uint32, error) {
	if len(data) < 4 {
		return 0, ErrShortValue
	}
	return binary.LittleEndian.Uint32(data), nil
}

// U64 is the fixed-width little-endian codec for uint64 values.
type U64 struct{}

// Append encodes v as 8 little-endian bytes.
func (U64) Append(dst []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, v)
}

// Read decodes 8 little-endian bytes.
func (U64) Read(data []byte) (uint64, error) {
	if len(data) < 8 {
		return 0, ErrShortValue
	}
	return binary.LittleEndian.Uint64(data), nil
}

// Bytes is the self-delimiting codec for variable-length byte strings.
// Values are prefixed with their uvarint length.
type Bytes struct{}

// Append encodes v with a uvarint length prefix.
func (Bytes) Append(dst []byte, v []byte) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(v)))
	return append(dst, v...)
}

// Read decodes a length-prefixed byte string. The returned slice is a copy
// and does not alias data.
func (Bytes) Read(data []byte) ([]byte, error) {
	n, sz := binary.Uvarint(data)
	if sz <= 0 {
		return nil, ErrShortValue
	}
	if uint64(len(data)-sz) < n {
		return nil, ErrShortValue
	}
	out := make([]byte, n)
	copy(out, data[sz:sz+int(n)])
	return out, nil
}
