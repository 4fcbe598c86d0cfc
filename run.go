// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partition

import (
	"errors"
	"io"

	"code.hybscloud.com/iox"
)

// Collect drains both handles of a partition and returns their items.
// Interleaves polls of both sides on the calling goroutine using adaptive
// backoff (iox.Backoff) when neither side can make progress. Does not spawn
// goroutines or register wakers.
//
// Collect stops at the first error other than io.EOF and returns it along
// with the items received so far. It does not close the handles.
func Collect[L, R any](left *Handle[L], right *Handle[R]) ([]L, []R, error) {
	var ls []L
	var rs []R
	var bo iox.Backoff
	leftDone, rightDone := false, false

	for !leftDone || !rightDone {
		progress := false
		if !leftDone {
			v, err := left.Poll(nil)
			switch {
			case err == nil:
				ls = append(ls, v)
				progress = true
			case errors.Is(err, io.EOF):
				leftDone = true
				progress = true
			case !iox.IsWouldBlock(err):
				return ls, rs, err
			}
		}
		if !rightDone {
			v, err := right.Poll(nil)
			switch {
			case err == nil:
				rs = append(rs, v)
				progress = true
			case errors.Is(err, io.EOF):
				rightDone = true
				progress = true
			case !iox.IsWouldBlock(err):
				return ls, rs, err
			}
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
	return ls, rs, nil
}
