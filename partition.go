// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partition

import (
	"errors"
	"io"
	"sync"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"github.com/rs/zerolog"
)

// Side identifies one of the two handles of a partition.
type Side uint8

const (
	Left Side = iota
	Right
)

// Other returns the opposite side.
func (s Side) Other() Side { return s ^ 1 }

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// sideOf reports which side a routed value belongs to.
func sideOf[L, R any](e kont.Either[L, R]) Side {
	if e.IsLeft() {
		return Left
	}
	return Right
}

// coordinator owns the source. Every poll of either handle runs its
// driving loop under μ, so the source is never polled concurrently.
//
// Wake registrations are kept behind their own lock: the source may call
// the coordinator's waker from any goroutine, including from inside Poll
// while μ is held.
type coordinator[T, L, R any] struct {
	src   Source[T]
	route func(T) kont.Either[L, R]

	// μ protects the fields below.
	μ      sync.Mutex
	slots  [2]slot[kont.Either[L, R]]
	closed [2]bool
	done   bool  // source reported io.EOF
	err    error // sticky source failure

	wμ    sync.Mutex // protects wake
	wake  [2]Waker
	waker Waker // handed to the source, wakes both sides

	stats  counters
	serial Serial
	log    zerolog.Logger
}

// Partition splits src into two handles. Items for which pred reports true
// go to the left handle and all others to the right, each in source order.
//
// The handles are independent: either may be polled from its own goroutine
// or scheduler. A side that is never polled holds back at most one item
// before the other side stalls; closing a side turns it into a drain.
func Partition[T any](src Source[T], pred func(T) bool, opts ...Option) (*Handle[T], *Handle[T]) {
	return PartitionEither(src, func(v T) kont.Either[T, T] {
		if pred(v) {
			return kont.Left[T, T](v)
		}
		return kont.Right[T, T](v)
	}, opts...)
}

// PartitionEither splits src into two handles using route, which both
// classifies and converts each item: a Left result is delivered to the
// left handle and a Right result to the right handle.
//
// route must be pure and must not panic.
func PartitionEither[T, L, R any](src Source[T], route func(T) kont.Either[L, R], opts ...Option) (*Handle[L], *Handle[R]) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &coordinator[T, L, R]{
		src:    src,
		route:  route,
		serial: nextSerial(),
	}
	c.log = o.logger.With().Uint32("serial", c.serial).Logger()
	c.waker = WakerFunc(c.wakeAll)

	left := newHandle(Left, c.serial, &c.stats, c.close, func(w Waker) (L, error) {
		e, err := c.poll(Left, w)
		if err != nil {
			var zero L
			return zero, err
		}
		v, _ := e.GetLeft()
		return v, nil
	})
	right := newHandle(Right, c.serial, &c.stats, c.close, func(w Waker) (R, error) {
		e, err := c.poll(Right, w)
		if err != nil {
			var zero R
			return zero, err
		}
		v, _ := e.GetRight()
		return v, nil
	})
	return left, right
}

// poll runs one poll of side s and wakes the peer outside the lock
// when the outcome may let it make progress.
func (c *coordinator[T, L, R]) poll(s Side, w Waker) (kont.Either[L, R], error) {
	c.μ.Lock()
	e, wakePeer, err := c.pollLocked(s, w)
	c.μ.Unlock()

	if !iox.IsWouldBlock(err) {
		c.unregister(s)
	}
	if wakePeer {
		c.wakeSide(s.Other())
	}
	return e, err
}

func (c *coordinator[T, L, R]) pollLocked(s Side, w Waker) (e kont.Either[L, R], wakePeer bool, err error) {
	if c.closed[s] {
		return e, false, ErrClosed
	}
	if c.err != nil {
		return e, false, c.err
	}
	if v, ok := c.slots[s].take(); ok {
		// The peer may be stalled on this buffer.
		c.stats.delivered[s].Add(1)
		return v, true, nil
	}
	if c.done {
		return e, false, io.EOF
	}

	// Register before touching the source so a wake that races with a
	// pending result is not lost. Spurious wakes are harmless.
	c.register(s, w)

	peer := s.Other()
	for {
		if !c.closed[peer] && c.slots[peer].full() {
			c.stats.stalls.Add(1)
			c.log.Debug().Stringer("side", s).Msg("partition stalled on full peer buffer")
			return e, wakePeer, iox.ErrWouldBlock
		}

		v, err := c.src.Poll(c.waker)
		switch {
		case err == nil:
		case iox.IsWouldBlock(err):
			return e, wakePeer, err
		case errors.Is(err, io.EOF):
			c.done = true
			c.log.Debug().Stringer("side", s).Msg("partition source exhausted")
			return e, true, io.EOF
		default:
			c.err = err
			c.log.Error().Err(err).Stringer("side", s).Msg("partition source failed")
			return e, true, err
		}
		c.stats.pulled.Add(1)

		routed := c.route(v)
		switch {
		case sideOf(routed) == s:
			c.stats.delivered[s].Add(1)
			return routed, wakePeer, nil
		case c.closed[peer]:
			c.stats.discarded.Add(1)
		default:
			c.slots[peer].put(routed)
			wakePeer = true
		}
	}
}

// close marks side s closed. Its buffered item is dropped, and every later
// item routed to it is discarded. Once both sides are closed the source is
// released.
func (c *coordinator[T, L, R]) close(s Side) error {
	c.μ.Lock()
	if c.closed[s] {
		c.μ.Unlock()
		return nil
	}
	c.closed[s] = true
	if c.slots[s].clear() {
		c.stats.discarded.Add(1)
	}
	both := c.closed[Left] && c.closed[Right]
	c.μ.Unlock()

	c.log.Debug().Stringer("side", s).Msg("partition side closed")
	c.unregister(s)
	// The peer may be stalled on this side's buffer.
	c.wakeSide(s.Other())

	if !both {
		return nil
	}
	if cl, ok := c.src.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

func (c *coordinator[T, L, R]) register(s Side, w Waker) {
	if w == nil {
		return
	}
	c.wμ.Lock()
	c.wake[s] = w
	c.wμ.Unlock()
}

func (c *coordinator[T, L, R]) unregister(s Side) {
	c.wμ.Lock()
	c.wake[s] = nil
	c.wμ.Unlock()
}

// wakeSide consumes the registration of side s, if any, and invokes it.
func (c *coordinator[T, L, R]) wakeSide(s Side) {
	c.wμ.Lock()
	w := c.wake[s]
	c.wake[s] = nil
	c.wμ.Unlock()
	if w != nil {
		w.Wake()
	}
}

// wakeAll is the waker given to the source. Whichever side polls next
// becomes the driver, so both registrations are woken.
func (c *coordinator[T, L, R]) wakeAll() {
	c.wμ.Lock()
	wl, wr := c.wake[Left], c.wake[Right]
	c.wake = [2]Waker{}
	c.wμ.Unlock()
	if wl != nil {
		wl.Wake()
	}
	if wr != nil {
		wr.Wake()
	}
}
