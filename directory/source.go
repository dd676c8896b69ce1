// Package directory abstracts where segment files live and how their bytes
// are accessed.
//
// Readers consume a ReadOnlySource: an immutable, random-access byte range
// whose backing (heap buffer or memory-mapped region) is invisible to the
// caller. Writers receive a plain io.WriteCloser.
package directory

import (
	"errors"
	"io"
)

// ErrNotFound is returned when a named file does not exist in a Directory.
var ErrNotFound = errors.New("directory: file not found")

// ReadOnlySource is an immutable, random-access range of bytes.
//
// Sub-ranges created with Slice share the backing storage of their root
// source. Close releases the backing storage (e.g. unmaps a mapped file)
// and must only be called on the root source, once all slices are no
// longer in use.
type ReadOnlySource struct {
	data    []byte
	release func() error
}

// SourceFromBytes wraps a heap buffer as a ReadOnlySource. The caller must
// not mutate b afterwards.
func SourceFromBytes(b []byte) ReadOnlySource {
	return ReadOnlySource{data: b}
}

// Bytes returns the underlying bytes. The slice is valid until the root
// source is closed and must not be mutated.
func (s ReadOnlySource) Bytes() []byte { return s.data }

// Len returns the number of bytes in the source.
func (s ReadOnlySource) Len() int { return len(s.data) }

// Slice returns the sub-range [from, to) as a ReadOnlySource sharing the
// same backing storage. It panics if the range is out of bounds, mirroring
// Go slice semantics.
func (s ReadOnlySource) Slice(from, to int) ReadOnlySource {
	return ReadOnlySource{data: s.data[from:to]}
}

// Close releases the backing storage, if any. Closing a source obtained
// via Slice or SourceFromBytes is a no-op.
func (s ReadOnlySource) Close() error {
	if s.release == nil {
		return nil
	}
	return s.release()
}

// Directory provides named file access for building and opening segment
// components. Implementations must be safe for concurrent use.
type Directory interface {
	// OpenRead opens an existing file for random-access reading.
	// It returns ErrNotFound if the file does not exist.
	OpenRead(name string) (ReadOnlySource, error)

	// OpenWrite creates the named file for writing, truncating it if it
	// already exists. The file's content becomes visible to OpenRead
	// after Close.
	OpenWrite(name string) (io.WriteCloser, error)

	// Exists reports whether the named file exists.
	Exists(name string) (bool, error)

	// Delete removes the named file. Deleting a missing file returns
	// ErrNotFound.
	Delete(name string) error
}
