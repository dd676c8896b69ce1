package query

import (
	"github.com/ColinClark/tantivy"
	"github.com/ColinClark/tantivy/segment"
)

// AllWeight matches every document of every segment with a constant score
// of 1.
type AllWeight struct{}

// Scorer implements Weight.
func (AllWeight) Scorer(reader segment.Reader) (Scorer, error) {
	return &allScorer{maxDoc: reader.MaxDoc()}, nil
}

type allScorer struct {
	doc    tantivy.DocID
	next   tantivy.DocID
	maxDoc tantivy.DocID
}

func (s *allScorer) Next() bool {
	if s.next >= s.maxDoc {
		return false
	}
	s.doc = s.next
	s.next++
	return true
}

func (s *allScorer) Doc() tantivy.DocID { return s.doc }

func (s *allScorer) Score() tantivy.Score { return 1 }
