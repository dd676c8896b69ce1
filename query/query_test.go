package query

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ColinClark/tantivy"
	"github.com/ColinClark/tantivy/segment"
)

func drain(t *testing.T, s Scorer) []tantivy.DocID {
	t.Helper()
	var docs []tantivy.DocID
	for s.Next() {
		docs = append(docs, s.Doc())
	}
	return docs
}

func TestAllWeightMatchesEveryDoc(t *testing.T) {
	s, err := AllWeight{}.Scorer(segment.NewMemReader(4))
	require.NoError(t, err)

	assert.Equal(t, []tantivy.DocID{0, 1, 2, 3}, drain(t, s))
}

func TestAllWeightEmptySegment(t *testing.T) {
	s, err := AllWeight{}.Scorer(segment.NewMemReader(0))
	require.NoError(t, err)
	assert.Empty(t, drain(t, s))
}

func TestAllWeightScore(t *testing.T) {
	s, err := AllWeight{}.Scorer(segment.NewMemReader(1))
	require.NoError(t, err)
	require.True(t, s.Next())
	assert.Equal(t, tantivy.Score(1), s.Score())
}

func TestBitmapWeightAscendingOrder(t *testing.T) {
	bm := roaring.BitmapOf(9, 2, 40, 17)
	w := BitmapWeight{
		Matches: func(segment.Reader) *roaring.Bitmap { return bm },
	}

	s, err := w.Scorer(segment.NewMemReader(50))
	require.NoError(t, err)

	assert.Equal(t, []tantivy.DocID{2, 9, 17, 40}, drain(t, s))
}

func TestBitmapWeightNilBitmap(t *testing.T) {
	w := BitmapWeight{}

	s, err := w.Scorer(segment.NewMemReader(10))
	require.NoError(t, err)
	assert.Empty(t, drain(t, s))
}

func TestBitmapWeightBoost(t *testing.T) {
	w := BitmapWeight{
		Matches: func(segment.Reader) *roaring.Bitmap { return roaring.BitmapOf(1) },
		Boost:   2.5,
	}

	s, err := w.Scorer(segment.NewMemReader(2))
	require.NoError(t, err)
	require.True(t, s.Next())
	assert.Equal(t, tantivy.Score(2.5), s.Score())
}
