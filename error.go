// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partition

import "errors"

// ErrClosed is reported by Poll on a handle that has been closed.
var ErrClosed = errors.New("partition: handle is closed")

// ErrQueueClosed is reported by Queue.Send after Close or Fail.
var ErrQueueClosed = errors.New("partition: queue is closed")
