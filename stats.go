// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package partition

import "code.hybscloud.com/atomix"

// Stats is a snapshot of a partition's counters.
type Stats struct {
	Pulled    uint64 // items pulled from the source
	Left      uint64 // items delivered to the left handle
	Right     uint64 // items delivered to the right handle
	Discarded uint64 // items dropped because their side was closed
	Stalls    uint64 // polls that stopped on a full peer buffer
}

// counters are written under the coordinator lock and read lock-free.
type counters struct {
	pulled    atomix.Uint64
	delivered [2]atomix.Uint64
	discarded atomix.Uint64
	stalls    atomix.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Pulled:    c.pulled.Load(),
		Left:      c.delivered[Left].Load(),
		Right:     c.delivered[Right].Load(),
		Discarded: c.discarded.Load(),
		Stalls:    c.stalls.Load(),
	}
}
