package termdict

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColinClark/tantivy/codec"
	"github.com/ColinClark/tantivy/directory"
)

func buildDict[V any](t *testing.T, d directory.Directory, name string, c codec.Codec[V], insert func(*Builder[V])) directory.ReadOnlySource {
	t.Helper()

	w, err := d.OpenWrite(name)
	require.NoError(t, err)
	b, err := NewBuilder(w, c)
	require.NoError(t, err)
	insert(b)
	require.NoError(t, b.Finish())
	require.NoError(t, w.Close())

	src, err := d.OpenRead(name)
	require.NoError(t, err)
	return src
}

func TestRoundTrip(t *testing.T) {
	d := directory.NewRAMDirectory()
	src := buildDict(t, d, "dict", codec.U32{}, func(b *Builder[uint32]) {
		require.NoError(t, b.Insert([]byte("abc"), 34))
		require.NoError(t, b.Insert([]byte("abcd"), 346))
	})

	m, err := Open(src, codec.U32{})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())

	v, ok, err := m.Get([]byte("abc"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(34), v)

	v, ok, err = m.Get([]byte("abcd"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(346), v)

	// A strict prefix of a stored key is absent, and absence is not an error.
	_, ok, err = m.Get([]byte("ab"))
	require.NoError(t, err)
	assert.False(t, ok)

	s := m.Stream()
	require.True(t, s.Next())
	assert.Equal(t, []byte("abc"), s.Key())
	assert.Equal(t, uint32(34), s.Value())
	require.True(t, s.Next())
	assert.Equal(t, []byte("abcd"), s.Key())
	assert.Equal(t, uint32(346), s.Value())
	assert.False(t, s.Next())
	require.NoError(t, s.Err())
}

func TestOrderInvariant(t *testing.T) {
	const n = 1000

	d := directory.NewRAMDirectory()
	src := buildDict(t, d, "dict", codec.U64{}, func(b *Builder[uint64]) {
		for i := 0; i < n; i++ {
			key := fmt.Appendf(nil, "key-%06d", i)
			require.NoError(t, b.Insert(key, uint64(i)*7))
		}
	})

	m, err := Open(src, codec.U64{})
	require.NoError(t, err)
	require.Equal(t, n, m.Len())

	for i := 0; i < n; i++ {
		key := fmt.Appendf(nil, "key-%06d", i)
		v, ok, err := m.Get(key)
		require.NoError(t, err)
		require.True(t, ok, "key %q", key)
		require.Equal(t, uint64(i)*7, v)
	}

	s := m.Stream()
	count := 0
	var prev []byte
	for s.Next() {
		if prev != nil {
			require.Less(t, string(prev), string(s.Key()))
		}
		require.Equal(t, uint64(count)*7, s.Value())
		prev = append(prev[:0], s.Key()...)
		count++
	}
	require.NoError(t, s.Err())
	assert.Equal(t, n, count)
}

func TestInsertOutOfOrder(t *testing.T) {
	b, err := NewBuilder(&discardWriter{}, codec.U32{})
	require.NoError(t, err)

	require.NoError(t, b.Insert([]byte("bbb"), 1))

	err = b.Insert([]byte("aaa"), 2)
	assert.ErrorIs(t, err, ErrOutOfOrder)

	// Duplicate keys are out of order too.
	err = b.Insert([]byte("bbb"), 3)
	assert.ErrorIs(t, err, ErrOutOfOrder)
}

func TestBuilderSingleUse(t *testing.T) {
	b, err := NewBuilder(&discardWriter{}, codec.U32{})
	require.NoError(t, err)
	require.NoError(t, b.Insert([]byte("a"), 1))
	require.NoError(t, b.Finish())

	assert.ErrorIs(t, b.Insert([]byte("b"), 2), ErrBuilderFinished)
	assert.ErrorIs(t, b.Finish(), ErrBuilderFinished)
}

func TestOpenCorrupt(t *testing.T) {
	// Shorter than the footer.
	_, err := Open(directory.SourceFromBytes([]byte{1, 2, 3}), codec.U32{})
	assert.ErrorIs(t, err, ErrCorrupt)

	// Footer claims a blob larger than the whole source.
	bad := []byte{0, 0, 0, 0, 100, 0, 0, 0}
	_, err = Open(directory.SourceFromBytes(bad), codec.U32{})
	assert.ErrorIs(t, err, ErrCorrupt)

	// Valid footer, garbage where the FST should be.
	garbage := append([]byte("this is not an fst"), 0, 0, 0, 0)
	_, err = Open(directory.SourceFromBytes(garbage), codec.U32{})
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestEmptyDictionary(t *testing.T) {
	d := directory.NewRAMDirectory()
	src := buildDict(t, d, "dict", codec.U32{}, func(*Builder[uint32]) {})

	m, err := Open(src, codec.U32{})
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())

	_, ok, err := m.Get([]byte("anything"))
	require.NoError(t, err)
	assert.False(t, ok)

	s := m.Stream()
	assert.False(t, s.Next())
	require.NoError(t, s.Err())
}

func TestConcurrentStreams(t *testing.T) {
	const n = 200

	d := directory.NewRAMDirectory()
	src := buildDict(t, d, "dict", codec.U64{}, func(b *Builder[uint64]) {
		for i := 0; i < n; i++ {
			require.NoError(t, b.Insert(fmt.Appendf(nil, "term-%04d", i), uint64(i)))
		}
	})

	m, err := Open(src, codec.U64{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	counts := make([]int, 8)
	for g := range counts {
		g := g
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := m.Stream()
			for s.Next() {
				counts[g]++
			}
			assert.NoError(t, s.Err())
		}()
	}
	wg.Wait()

	for _, c := range counts {
		assert.Equal(t, n, c)
	}
}

func TestMmapRoundTrip(t *testing.T) {
	d, err := directory.NewMmapDirectory(t.TempDir())
	require.NoError(t, err)

	src := buildDict(t, d, "seg0.term", TermInfoCodec{}, func(b *Builder[TermInfo]) {
		require.NoError(t, b.Insert([]byte("apple"), TermInfo{DocFreq: 3, PostingsOffset: 0, PostingsLen: 24}))
		require.NoError(t, b.Insert([]byte("banana"), TermInfo{DocFreq: 1, PostingsOffset: 24, PostingsLen: 8}))
	})
	defer src.Close()

	m, err := Open(src, TermInfoCodec{})
	require.NoError(t, err)

	ti, ok, err := m.Get([]byte("banana"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, TermInfo{DocFreq: 1, PostingsOffset: 24, PostingsLen: 8}, ti)
}

func TestBytesValues(t *testing.T) {
	d := directory.NewRAMDirectory()
	src := buildDict(t, d, "dict", codec.Bytes{}, func(b *Builder[[]byte]) {
		require.NoError(t, b.Insert([]byte("k1"), []byte("short")))
		require.NoError(t, b.Insert([]byte("k2"), nil))
		require.NoError(t, b.Insert([]byte("k3"), []byte("a considerably longer value payload")))
	})

	m, err := Open(src, codec.Bytes{})
	require.NoError(t, err)

	v, ok, err := m.Get([]byte("k1"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("short"), v)

	v, ok, err = m.Get([]byte("k2"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, v)

	v, ok, err = m.Get([]byte("k3"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("a considerably longer value payload"), v)
}

func TestTermInfoCodecSelfDelimiting(t *testing.T) {
	var c TermInfoCodec
	buf := c.Append(nil, TermInfo{DocFreq: 5, PostingsOffset: 512, PostingsLen: 100})
	buf = c.Append(buf, TermInfo{DocFreq: 9, PostingsOffset: 612, PostingsLen: 7})

	ti, err := c.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), ti.DocFreq)

	ti, err = c.Read(buf[termInfoLen:])
	require.NoError(t, err)
	assert.Equal(t, uint32(9), ti.DocFreq)
	assert.Equal(t, uint64(612), ti.PostingsOffset)

	_, err = c.Read(buf[:termInfoLen-1])
	assert.ErrorIs(t, err, codec.ErrShortValue)
}

type discardWriter struct{}

func (*discardWriter) Write(p []byte) (int, error) { return len(p), nil }
