// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partition

import (
	"io"
	"iter"
)

// Waker is the wake handle registered by a poller that got iox.ErrWouldBlock.
// Wake may be called from any goroutine, at most once per registration,
// and must not poll synchronously.
type Waker interface {
	Wake()
}

// WakerFunc adapts a plain function to Waker.
type WakerFunc func()

// Wake calls f.
func (f WakerFunc) Wake() { f() }

// Source is a single-pass sequence polled by one driver at a time.
//
// Poll is non-blocking. It returns:
//   - (item, nil) for the next item;
//   - (zero, iox.ErrWouldBlock) when no item is ready yet, after arranging
//     for w.Wake to be called once one may be (w may be nil);
//   - (zero, io.EOF) once the sequence is exhausted;
//   - (zero, err) on failure.
//
// If a Source also implements io.Closer, it is closed once both handles of
// its partition are closed.
type Source[T any] interface {
	Poll(w Waker) (T, error)
}

// SourceFunc adapts a plain poll function to Source.
type SourceFunc[T any] func(w Waker) (T, error)

// Poll calls f.
func (f SourceFunc[T]) Poll(w Waker) (T, error) { return f(w) }

// sliceSource yields items in order and never reports iox.ErrWouldBlock.
type sliceSource[T any] struct {
	items []T
}

// FromSlice returns a Source over items. The slice is not copied.
func FromSlice[T any](items ...T) Source[T] {
	return &sliceSource[T]{items: items}
}

func (s *sliceSource[T]) Poll(Waker) (T, error) {
	if len(s.items) == 0 {
		var zero T
		return zero, io.EOF
	}
	v := s.items[0]
	s.items = s.items[1:]
	return v, nil
}

// seqSource pulls from an iterator. iter.Pull's next blocks until the
// iterator produces, so a seq source never reports iox.ErrWouldBlock.
type seqSource[T any] struct {
	next func() (T, bool)
	stop func()
}

// FromSeq returns a Source over seq. The returned Source implements
// io.Closer, which stops the iterator early.
func FromSeq[T any](seq iter.Seq[T]) Source[T] {
	next, stop := iter.Pull(seq)
	return &seqSource[T]{next: next, stop: stop}
}

func (s *seqSource[T]) Poll(Waker) (T, error) {
	v, ok := s.next()
	if !ok {
		return v, io.EOF
	}
	return v, nil
}

func (s *seqSource[T]) Close() error {
	s.stop()
	return nil
}
