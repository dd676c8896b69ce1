package termdict

import (
	"encoding/binary"

	"github.com/ColinClark/tantivy/codec"
)

// TermInfo is the record a segment's term dictionary stores per term: how
// many documents contain the term and where its postings list lives.
type TermInfo struct {
	// DocFreq is the number of documents containing the term.
	DocFreq uint32

	// PostingsOffset is the byte offset of the term's postings list
	// within the segment's postings file.
	PostingsOffset uint64

	// PostingsLen is the byte length of the postings list.
	PostingsLen uint32
}

// termInfoLen is the fixed encoded width of a TermInfo.
const termInfoLen = 4 + 8 + 4

// TermInfoCodec is the fixed-width little-endian codec for TermInfo values.
type TermInfoCodec struct{}

var _ codec.Codec[TermInfo] = TermInfoCodec{}

// Append encodes ti as 16 little-endian bytes.
func (TermInfoCodec) Append(dst []byte, ti TermInfo) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, ti.DocFreq)
	dst = binary.LittleEndian.AppendUint64(dst, ti.PostingsOffset)
	return binary.LittleEndian.AppendUint32(dst, ti.PostingsLen)
}

// Read decodes a TermInfo from the cursor position.
func (TermInfoCodec) Read(data []byte) (TermInfo, error) {
	if len(data) < termInfoLen {
		return TermInfo{}, codec.ErrShortValue
	}
	return TermInfo{
		DocFreq:        binary.LittleEndian.Uint32(data),
		PostingsOffset: binary.LittleEndian.Uint64(data[4:]),
		PostingsLen:    binary.LittleEndian.Uint32(data[12:]),
	}, nil
}
