// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partition

import (
	"io"
	"math/bits"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// minQueueCapacity is the smallest ring a Queue allocates.
const minQueueCapacity = 2

// Queue is a bounded mailbox Source fed by a single producer goroutine.
// Transport is a lock-free SPSC ring from lfq: the producer calls Send,
// and the partition that owns the queue is its only consumer.
//
// Send never blocks; it returns iox.ErrWouldBlock while the ring is full.
// A pending consumer registered through Poll is woken by the next Send,
// Close or Fail.
type Queue[T any] struct {
	ring   lfq.SPSC[T]
	closed atomix.Uint32

	μ     sync.Mutex // protects waker and err
	waker Waker
	err   error // io.EOF after Close, or the Fail error
}

// NewQueue creates a queue holding up to capacity items, rounded up to a
// power of two.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < minQueueCapacity {
		capacity = minQueueCapacity
	}
	q := &Queue[T]{}
	q.ring.Init(1 << bits.Len(uint(capacity-1)))
	return q
}

// Send enqueues v. It returns iox.ErrWouldBlock if the ring is full and
// ErrQueueClosed after Close or Fail. Send must only be called by the
// producer.
func (q *Queue[T]) Send(v T) error {
	if q.closed.Load() != 0 {
		return ErrQueueClosed
	}
	if err := q.ring.Enqueue(&v); err != nil {
		return err
	}
	q.wake()
	return nil
}

// Close ends the stream. Items already sent are still delivered, then the
// consumer sees io.EOF.
func (q *Queue[T]) Close() { q.finish(io.EOF) }

// Fail ends the stream with err. Items already sent are still delivered,
// then the consumer sees err.
func (q *Queue[T]) Fail(err error) { q.finish(err) }

func (q *Queue[T]) finish(err error) {
	q.μ.Lock()
	first := q.err == nil
	if first {
		q.err = err
	}
	q.μ.Unlock()
	if !first {
		return
	}
	q.closed.Add(1)
	q.wake()
}

// Poll implements Source.
func (q *Queue[T]) Poll(w Waker) (T, error) {
	// Register before looking at the ring: a Send that lands after the
	// empty check is guaranteed to see the waker.
	q.μ.Lock()
	q.waker = w
	q.μ.Unlock()

	if v, err := q.ring.Dequeue(); err == nil {
		return v, nil
	}
	var zero T
	if q.closed.Load() == 0 {
		return zero, iox.ErrWouldBlock
	}
	// Items sent before finish are delivered first.
	if v, err := q.ring.Dequeue(); err == nil {
		return v, nil
	}
	q.μ.Lock()
	defer q.μ.Unlock()
	return zero, q.err
}

func (q *Queue[T]) wake() {
	q.μ.Lock()
	w := q.waker
	q.waker = nil
	q.μ.Unlock()
	if w != nil {
		w.Wake()
	}
}
