package directory

import (
	"bytes"
	"io"
	"sync"
)

// RAMDirectory is an in-memory Directory. It is primarily useful for tests
// and for building short-lived segments that never touch disk.
// Safe for concurrent use.
type RAMDirectory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewRAMDirectory creates an empty in-memory directory.
func NewRAMDirectory() *RAMDirectory {
	return &RAMDirectory{files: make(map[string][]byte)}
}

// OpenRead returns a source over the file's bytes as of the writer's Close.
func (d *RAMDirectory) OpenRead(name string) (ReadOnlySource, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	data, ok := d.files[name]
	if !ok {
		return ReadOnlySource{}, ErrNotFound
	}
	return SourceFromBytes(data), nil
}

// OpenWrite returns a writer whose bytes are published atomically on Close.
func (d *RAMDirectory) OpenWrite(name string) (io.WriteCloser, error) {
	return &ramWriter{dir: d, name: name}, nil
}

// Exists reports whether the named file has been written and closed.
func (d *RAMDirectory) Exists(name string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.files[name]
	return ok, nil
}

// Delete removes the named file.
func (d *RAMDirectory) Delete(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.files[name]; !ok {
		return ErrNotFound
	}
	delete(d.files, name)
	return nil
}

type ramWriter struct {
	dir  *RAMDirectory
	name string
	buf  bytes.Buffer
}

func (w *ramWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *ramWriter) Close() error {
	w.dir.mu.Lock()
	defer w.dir.mu.Unlock()

	// Copy so later writer reuse cannot alias published bytes.
	data := make([]byte, w.buf.Len())
	copy(data, w.buf.Bytes())
	w.dir.files[w.name] = data
	return nil
}
