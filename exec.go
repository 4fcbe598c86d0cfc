// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partition

import (
	"context"
	"errors"
	"io"
	"iter"

	"code.hybscloud.com/iox"
)

// Next blocks until the next item for this side is available, the stream
// ends (io.EOF), the source fails, or ctx ends.
//
// Next parks on a one-slot signal channel registered as the waker, so it
// spends no CPU while pending.
func (h *Handle[T]) Next(ctx context.Context) (T, error) {
	w := signaler(h.ready)
	for {
		v, err := h.Poll(w)
		if !iox.IsWouldBlock(err) {
			return v, err
		}
		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-h.ready:
		}
	}
}

// signaler returns a waker that buffers or discards a wake on ready.
// A stale signal only costs one extra poll. The waker holds the channel
// rather than the handle, so a registration never keeps a handle reachable.
func signaler(ready chan struct{}) Waker {
	return WakerFunc(func() {
		select {
		case ready <- struct{}{}:
		default:
		}
	})
}

// All returns an iterator over the remaining items of this side. Iteration
// stops at end of stream; any other error is yielded once and ends it.
func (h *Handle[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, err := h.Next(ctx)
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}
