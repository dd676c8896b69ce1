package directory

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	mmap "github.com/blevesearch/mmap-go"
)

// MmapDirectory is a Directory over a filesystem directory. Reads are
// memory-mapped, so ReadOnlySource access is zero-copy; the mapping is
// released when the root source is closed.
type MmapDirectory struct {
	root string
}

// NewMmapDirectory opens root as a directory, creating it if necessary.
func NewMmapDirectory(root string) (*MmapDirectory, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("directory: create root: %w", err)
	}
	return &MmapDirectory{root: root}, nil
}

// OpenRead memory-maps the named file.
func (d *MmapDirectory) OpenRead(name string) (ReadOnlySource, error) {
	f, err := os.Open(d.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return ReadOnlySource{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return ReadOnlySource{}, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return ReadOnlySource{}, err
	}
	if info.Size() == 0 {
		// Mapping zero bytes is invalid on most platforms.
		f.Close()
		return SourceFromBytes(nil), nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return ReadOnlySource{}, fmt.Errorf("directory: mmap %s: %w", name, err)
	}

	return ReadOnlySource{
		data: m,
		release: func() error {
			unmapErr := m.Unmap()
			closeErr := f.Close()
			if unmapErr != nil {
				return unmapErr
			}
			return closeErr
		},
	}, nil
}

// OpenWrite creates the named file, truncating any previous content.
func (d *MmapDirectory) OpenWrite(name string) (io.WriteCloser, error) {
	return os.Create(d.path(name))
}

// Exists reports whether the named file exists on disk.
func (d *MmapDirectory) Exists(name string) (bool, error) {
	_, err := os.Stat(d.path(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Delete removes the named file from disk.
func (d *MmapDirectory) Delete(name string) error {
	err := os.Remove(d.path(name))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return err
}

func (d *MmapDirectory) path(name string) string {
	return filepath.Join(d.root, name)
}
