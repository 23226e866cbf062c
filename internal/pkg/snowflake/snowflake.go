// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package snowflake

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Snowflake layout (64-bit signed):
//
//	1 bit unused | 41 bits timestamp (ms since epoch) | 5 bits datacenter | 5 bits worker | 12 bits sequence
//
// Ids are time-ordered and unique per (datacenter, worker) pair without any
// external coordination.
const (
	// epoch is 2020-01-01T00:00:00Z in milliseconds. Ids are offsets from it.
	epoch int64 = 1577836800000

	workerBits     = 5
	datacenterBits = 5
	sequenceBits   = 12

	maxWorker     = -1 ^ (-1 << workerBits)
	maxDatacenter = -1 ^ (-1 << datacenterBits)
	maxSequence   = -1 ^ (-1 << sequenceBits)

	workerShift     = sequenceBits
	datacenterShift = sequenceBits + workerBits
	timestampShift  = sequenceBits + workerBits + datacenterBits
)

// ErrClockMovedBackwards is returned when the wall clock runs behind the
// timestamp of the last issued id. Issuing anyway could duplicate ids, so the
// caller must fail the current request instead.
var ErrClockMovedBackwards = errors.New("snowflake: clock moved backwards")

// Node issues unique ids for a single (datacenter, worker) identity.
// Safe for concurrent use; the lock covers only the sequence bump, never I/O.
type Node struct {
	mu         sync.Mutex
	datacenter int64
	worker     int64
	lastMillis int64
	sequence   int64

	// now is swappable for tests
	now func() int64
}

// NewNode creates an id node. Datacenter and worker must fit their 5-bit
// fields; cooperating processes must each be given a distinct pair.
func NewNode(datacenter, worker int64) (*Node, error) {
	if datacenter < 0 || datacenter > maxDatacenter {
		return nil, fmt.Errorf("snowflake: datacenter id %d out of range [0, %d]", datacenter, maxDatacenter)
	}
	if worker < 0 || worker > maxWorker {
		return nil, fmt.Errorf("snowflake: worker id %d out of range [0, %d]", worker, maxWorker)
	}
	return &Node{
		datacenter: datacenter,
		worker:     worker,
		now:        func() int64 { return time.Now().UnixMilli() },
	}, nil
}

// NextID returns the next unique id. It never blocks on external I/O; the
// only wait is spinning to the next millisecond when the per-millisecond
// sequence is exhausted.
func (n *Node) NextID() (int64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	millis := n.now()
	if millis < n.lastMillis {
		return 0, fmt.Errorf("%w: %dms behind", ErrClockMovedBackwards, n.lastMillis-millis)
	}

	if millis == n.lastMillis {
		n.sequence = (n.sequence + 1) & maxSequence
		if n.sequence == 0 {
			// Sequence exhausted for this millisecond, wait out the tick.
			for millis <= n.lastMillis {
				millis = n.now()
			}
		}
	} else {
		n.sequence = 0
	}
	n.lastMillis = millis

	id := (millis-epoch)<<timestampShift |
		n.datacenter<<datacenterShift |
		n.worker<<workerShift |
		n.sequence
	return id, nil
}

// Timestamp extracts the creation time encoded in an id.
func Timestamp(id int64) time.Time {
	return time.UnixMilli((id >> timestampShift) + epoch)
}
