// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package partition splits one pollable source into two independent streams.
//
// [Partition] takes a [Source] and a predicate and returns a left and a right
// [Handle]. Items for which the predicate holds are delivered to the left
// handle and all others to the right, each in source order, with nothing
// dropped or duplicated. The two handles can be consumed at their own pace.
//
// # Architecture
//
//   - Single driver: the source is owned by a coordinator and polled only
//     under its lock, by whichever side is currently polling.
//   - Side buffers: an item pulled for the other side is parked in that side's
//     one-item buffer, and the peer is woken.
//   - Backpressure: while the other side's buffer is full the driver stops
//     pulling and reports [code.hybscloud.com/iox.ErrWouldBlock]. The stalled
//     side is woken when the buffer is taken or its side is closed.
//   - Drain: a closed side discards every item routed to it, so an abandoned
//     consumer never stalls its peer. Unreachable handles close themselves.
//
// # Results
//
// [Handle.Poll] is non-blocking and follows the [Source] contract:
//
//   - (item, nil): the next item for this side.
//   - [io.EOF]: the source is exhausted and this side's buffer is drained.
//   - [code.hybscloud.com/iox.ErrWouldBlock]: not ready; the [Waker] passed to
//     Poll is woken when polling again may make progress.
//   - [ErrClosed]: the handle was closed.
//   - any other error: the source failed. The failure is sticky and is
//     reported by every later poll of either side.
//
// # Integration
//
//   - Stepping: [Handle.Poll] with a [Waker] fits an external event loop.
//   - Blocking: [Handle.Next] and [Handle.All] park on a channel until woken.
//   - Draining: [Collect] interleaves both sides on one goroutine using
//     adaptive backoff (iox.Backoff).
//   - Sources: [FromSlice], [FromSeq], [SourceFunc], and [Queue], a bounded
//     lock-free mailbox built on [code.hybscloud.com/lfq].
//   - Routing with conversion: [PartitionEither] classifies each item into a
//     [code.hybscloud.com/kont.Either] whose sides may have different types.
//
// # Example
//
//	evens, odds := partition.Partition(partition.FromSlice(1, 2, 3, 4),
//		func(n int) bool { return n%2 == 0 })
//	ls, rs, _ := partition.Collect(evens, odds)
//	// ls == [2 4], rs == [1 3]
package partition
