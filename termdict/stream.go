package termdict

import (
	"errors"

	"github.com/blevesearch/vellum"
)

// Stream iterates the dictionary's (key, value) pairs in ascending key
// order. A Stream is lazy, finite, and non-restartable; independent
// Streams over the same Map may run concurrently.
//
//	s := m.Stream()
//	for s.Next() {
//		use(s.Key(), s.Value())
//	}
//	if err := s.Err(); err != nil { ... }
type Stream[V any] struct {
	m       *Map[V]
	itr     *vellum.FSTIterator
	started bool
	done    bool
	key     []byte
	value   V
	err     error
}

// Stream starts an ascending iteration over all entries.
func (m *Map[V]) Stream() *Stream[V] {
	s := &Stream[V]{m: m}

	itr, err := m.fst.Iterator(nil, nil)
	if err != nil {
		s.done = true
		if !errors.Is(err, vellum.ErrIteratorDone) {
			s.err = err
		}
		return s
	}
	s.itr = itr
	return s
}

// Next advances to the next entry. It returns false when the stream is
// exhausted or an error occurred; check Err to distinguish.
func (s *Stream[V]) Next() bool {
	if s.done {
		return false
	}
	if s.started {
		if err := s.itr.Next(); err != nil {
			s.done = true
			if !errors.Is(err, vellum.ErrIteratorDone) {
				s.err = err
			}
			return false
		}
	}
	s.started = true

	key, offset := s.itr.Current()
	// The iterator reuses its key buffer between steps.
	s.key = append(s.key[:0], key...)

	value, err := s.m.readValue(offset)
	if err != nil {
		s.done = true
		s.err = err
		return false
	}
	s.value = value
	return true
}

// Key returns the current entry's key. The slice is only valid until the
// next call to Next.
func (s *Stream[V]) Key() []byte { return s.key }

// Value returns the current entry's value.
func (s *Stream[V]) Value() V { return s.value }

// Err returns the first error encountered while streaming, if any.
func (s *Stream[V]) Err() error { return s.err }
