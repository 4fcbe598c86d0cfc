// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partition

import (
	"runtime"
	"sync"
)

// Handle is one side of a partition: a single-pass stream of the items
// routed to that side, in source order.
//
// A Handle is meant for one consumer. Poll and Next must not be called
// concurrently on the same handle; the two handles of a partition may be
// used from different goroutines.
type Handle[T any] struct {
	side   Side
	serial Serial
	stats  *counters
	poll   func(Waker) (T, error)
	close  func(Side) error

	once    sync.Once
	err     error
	cleanup runtime.Cleanup
	ready   chan struct{} // wake signal for Next, buffered by one
}

func newHandle[T any](side Side, serial Serial, stats *counters, closeSide func(Side) error, poll func(Waker) (T, error)) *Handle[T] {
	h := &Handle[T]{
		side:   side,
		serial: serial,
		stats:  stats,
		poll:   poll,
		close:  closeSide,
		ready:  make(chan struct{}, 1),
	}
	// An abandoned handle closes its side, so the peer never stalls on it.
	h.cleanup = runtime.AddCleanup(h, func(s Side) { _ = closeSide(s) }, side)
	return h
}

// Poll makes one non-blocking attempt to receive the next item for this side.
//
// It returns (item, nil) on success, io.EOF once the source is exhausted and
// this side's buffer is drained, iox.ErrWouldBlock when no item is ready yet,
// ErrClosed after Close, or the source's failure. On iox.ErrWouldBlock, w (if
// non-nil) is registered and woken when polling again may make progress: the
// source became ready, or the other side freed its buffer or closed. Each
// Poll replaces the previous registration.
func (h *Handle[T]) Poll(w Waker) (T, error) {
	return h.poll(w)
}

// Close closes this side. Items routed to it afterwards are discarded, and
// a buffered item is dropped. If the other side is closed as well and the
// source implements io.Closer, the source is closed and its error returned.
// Close is idempotent.
func (h *Handle[T]) Close() error {
	h.once.Do(func() {
		h.cleanup.Stop()
		h.err = h.close(h.side)
	})
	return h.err
}

// Side reports which side of the partition h is.
func (h *Handle[T]) Side() Side { return h.side }

// Serial returns the serial number of h's partition.
func (h *Handle[T]) Serial() Serial { return h.serial }

// Stats returns a snapshot of the partition's counters.
func (h *Handle[T]) Stats() Stats { return h.stats.snapshot() }
