// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partition_test

import (
	"errors"
	"io"
	"testing"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/partition"
)

// wakeCounter counts how many times it was woken.
type wakeCounter struct {
	n atomix.Uint32
}

func (w *wakeCounter) Wake() { w.n.Add(1) }
func (w *wakeCounter) count() uint32 { return w.n.Load() }

// stepSource is a hand-driven source for single-goroutine tests.
// Items become visible only through ready; until then Poll is pending.
type stepSource[T any] struct {
	items  []T
	ended  bool
	err    error
	waker  partition.Waker
	polls  int
	closed bool
}

// ready appends items and wakes the last registered waker.
func (s *stepSource[T]) ready(items ...T) {
	s.items = append(s.items, items...)
	s.wake()
}

func (s *stepSource[T]) end() {
	s.ended = true
	s.wake()
}

func (s *stepSource[T]) fail(err error) {
	s.err = err
	s.wake()
}

func (s *stepSource[T]) wake() {
	if w := s.waker; w != nil {
		s.waker = nil
		w.Wake()
	}
}

func (s *stepSource[T]) Poll(w partition.Waker) (T, error) {
	s.polls++
	var zero T
	if len(s.items) > 0 {
		v := s.items[0]
		s.items = s.items[1:]
		return v, nil
	}
	if s.err != nil {
		return zero, s.err
	}
	if s.ended {
		return zero, io.EOF
	}
	s.waker = w
	return zero, iox.ErrWouldBlock
}

func (s *stepSource[T]) Close() error {
	s.closed = true
	return nil
}

func isEven(n int) bool { return n%2 == 0 }

// mustItem polls h once and requires an item equal to want.
func mustItem[T comparable](t *testing.T, h *partition.Handle[T], w partition.Waker, want T) {
	t.Helper()
	got, err := h.Poll(w)
	if err != nil {
		t.Fatalf("%v Poll: got error %v, want %v", h.Side(), err, want)
	}
	if got != want {
		t.Fatalf("%v Poll: got %v, want %v", h.Side(), got, want)
	}
}

// mustPending polls h once and requires iox.ErrWouldBlock.
func mustPending[T any](t *testing.T, h *partition.Handle[T], w partition.Waker) {
	t.Helper()
	v, err := h.Poll(w)
	if !iox.IsWouldBlock(err) {
		t.Fatalf("%v Poll: got (%v, %v), want ErrWouldBlock", h.Side(), v, err)
	}
}

// mustErr polls h once and requires an error matching want.
func mustErr[T any](t *testing.T, h *partition.Handle[T], w partition.Waker, want error) {
	t.Helper()
	v, err := h.Poll(w)
	if !errors.Is(err, want) {
		t.Fatalf("%v Poll: got (%v, %v), want %v", h.Side(), v, err, want)
	}
}

// drain polls h with a nil waker until io.EOF and returns its items.
// The source must never be pending and the other side must be closed,
// otherwise h stalls on the peer buffer.
func drain[T any](t *testing.T, h *partition.Handle[T]) []T {
	t.Helper()
	var out []T
	for {
		v, err := h.Poll(nil)
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("%v Poll: unexpected error %v", h.Side(), err)
		}
		out = append(out, v)
	}
}
