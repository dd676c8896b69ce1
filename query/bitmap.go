package query

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/ColinClark/tantivy"
	"github.com/ColinClark/tantivy/segment"
)

// BitmapWeight matches a precomputed per-segment document set, scored with
// a constant. It is the bridge for callers that already resolved their
// matches into bitmaps (filters, cached results, tests).
type BitmapWeight struct {
	// Matches returns the document set for a segment. A nil bitmap means
	// the segment has no matches.
	Matches func(reader segment.Reader) *roaring.Bitmap

	// Boost is the constant score of every match. Zero means 1.
	Boost tantivy.Score
}

// Scorer implements Weight.
func (w BitmapWeight) Scorer(reader segment.Reader) (Scorer, error) {
	score := w.Boost
	if score == 0 {
		score = 1
	}

	var bm *roaring.Bitmap
	if w.Matches != nil {
		bm = w.Matches(reader)
	}
	if bm == nil {
		bm = roaring.New()
	}
	return &bitmapScorer{itr: bm.Iterator(), score: score}, nil
}

type bitmapScorer struct {
	itr   roaring.IntPeekable
	doc   tantivy.DocID
	score tantivy.Score
}

func (s *bitmapScorer) Next() bool {
	if !s.itr.HasNext() {
		return false
	}
	s.doc = tantivy.DocID(s.itr.Next())
	return true
}

func (s *bitmapScorer) Doc() tantivy.DocID { return s.doc }

func (s *bitmapScorer) Score() tantivy.Score { return s.score }
