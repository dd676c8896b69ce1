package store

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColinClark/tantivy/directory"
)

func buildStore(t *testing.T, records [][]byte, opts ...WriterOption) directory.ReadOnlySource {
	t.Helper()

	d := directory.NewRAMDirectory()
	w, err := d.OpenWrite("docs.store")
	require.NoError(t, err)

	sw := NewWriter(w, opts...)
	for i, rec := range records {
		id, err := sw.Store(rec)
		require.NoError(t, err)
		require.Equal(t, uint32(i), id)
	}
	require.NoError(t, sw.Finish())
	require.NoError(t, w.Close())

	src, err := d.OpenRead("docs.store")
	require.NoError(t, err)
	return src
}

func testRecords(n int) [][]byte {
	records := make([][]byte, n)
	for i := range records {
		records[i] = bytes.Repeat(fmt.Appendf(nil, "record-%04d ", i), 1+i%5)
	}
	return records
}

func TestRoundTripPerCompressor(t *testing.T) {
	records := testRecords(500)

	for _, comp := range []Compressor{LZ4(), Zstd(), Snappy()} {
		t.Run(comp.Name(), func(t *testing.T) {
			// Small blocks so the store spans many of them.
			src := buildStore(t, records, WithCompressor(comp), WithBlockSize(512))

			r, err := OpenReader(src)
			require.NoError(t, err)
			assert.Equal(t, uint32(len(records)), r.NumRecords())
			assert.Equal(t, comp.Name(), r.CompressorName())

			for i, want := range records {
				got, err := r.Get(uint32(i))
				require.NoError(t, err)
				require.Equal(t, want, got, "record %d", i)
			}
		})
	}
}

func TestRandomAccessOrder(t *testing.T) {
	records := testRecords(100)
	src := buildStore(t, records, WithBlockSize(256))

	r, err := OpenReader(src)
	require.NoError(t, err)

	// Access out of order to exercise block switching and the cache.
	for _, id := range []uint32{99, 0, 50, 51, 50, 1, 98} {
		got, err := r.Get(id)
		require.NoError(t, err)
		assert.Equal(t, records[id], got)
	}
}

func TestGetOutOfRange(t *testing.T) {
	src := buildStore(t, testRecords(3))

	r, err := OpenReader(src)
	require.NoError(t, err)

	_, err = r.Get(3)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmptyStore(t *testing.T) {
	src := buildStore(t, nil)

	r, err := OpenReader(src)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), r.NumRecords())

	_, err = r.Get(0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEmptyRecords(t *testing.T) {
	src := buildStore(t, [][]byte{nil, []byte("x"), nil})

	r, err := OpenReader(src)
	require.NoError(t, err)

	got, err := r.Get(0)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = r.Get(1)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), got)

	got, err = r.Get(2)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpenCorrupt(t *testing.T) {
	// Too short for a footer.
	_, err := OpenReader(directory.SourceFromBytes([]byte{1, 2, 3}))
	assert.ErrorIs(t, err, ErrCorrupt)

	src := buildStore(t, testRecords(10))
	data := append([]byte(nil), src.Bytes()...)

	// Bad magic.
	bad := append([]byte(nil), data...)
	bad[len(bad)-1] ^= 0xff
	_, err = OpenReader(directory.SourceFromBytes(bad))
	assert.ErrorIs(t, err, ErrCorrupt)

	// Flipped index bit fails the checksum.
	bad = append([]byte(nil), data...)
	bad[len(bad)-footerLen-1] ^= 0xff
	_, err = OpenReader(directory.SourceFromBytes(bad))
	assert.ErrorIs(t, err, ErrCorrupt)

	// Unknown compressor id.
	bad = append([]byte(nil), data...)
	bad[len(bad)-footerLen+8] = 99
	_, err = OpenReader(directory.SourceFromBytes(bad))
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestWriterSingleUse(t *testing.T) {
	d := directory.NewRAMDirectory()
	w, err := d.OpenWrite("docs.store")
	require.NoError(t, err)

	sw := NewWriter(w)
	_, err = sw.Store([]byte("a"))
	require.NoError(t, err)
	require.NoError(t, sw.Finish())

	_, err = sw.Store([]byte("b"))
	assert.ErrorIs(t, err, ErrWriterFinished)
	assert.ErrorIs(t, sw.Finish(), ErrWriterFinished)
}

func TestConcurrentReads(t *testing.T) {
	records := testRecords(200)
	src := buildStore(t, records, WithBlockSize(512))

	r, err := OpenReader(src)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range records {
				got, err := r.Get(uint32(i))
				if assert.NoError(t, err) {
					assert.Equal(t, records[i], got)
				}
			}
		}()
	}
	wg.Wait()
}

func TestIncompressibleBlockLZ4(t *testing.T) {
	// High-entropy records defeat LZ4 and exercise the stored-raw path.
	records := make([][]byte, 50)
	state := uint64(0x9e3779b97f4a7c15)
	for i := range records {
		rec := make([]byte, 64)
		for j := range rec {
			state = state*6364136223846793005 + 1442695040888963407
			rec[j] = byte(state >> 56)
		}
		records[i] = rec
	}

	src := buildStore(t, records, WithCompressor(LZ4()), WithBlockSize(256))
	r, err := OpenReader(src)
	require.NoError(t, err)

	for i, want := range records {
		got, err := r.Get(uint32(i))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}
