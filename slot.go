// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partition

// slot is the one-item hand-off buffer of a side.
// It is only touched with the coordinator lock held.
type slot[T any] struct {
	v  T
	ok bool
}

// put stores v. The slot must be empty: a second item for the same side
// would have to be dropped or reordered, so an occupied slot is a bug.
func (s *slot[T]) put(v T) {
	if s.ok {
		panic("partition: put into occupied side buffer")
	}
	s.v, s.ok = v, true
}

// take removes and returns the buffered item, if any.
func (s *slot[T]) take() (T, bool) {
	var zero T
	if !s.ok {
		return zero, false
	}
	v := s.v
	s.v, s.ok = zero, false
	return v, true
}

func (s *slot[T]) full() bool { return s.ok }

// clear drops the buffered item and reports whether there was one.
func (s *slot[T]) clear() bool {
	_, ok := s.take()
	return ok
}
