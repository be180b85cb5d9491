// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pktq

import "math"

const (
	// DefaultIDLimit is the exclusive upper bound on packet ids.
	// It is a sanity check against corrupted ids, not a protocol limit.
	DefaultIDLimit = 10000

	// DefaultReclaimThreshold is how far, in bytes, the read cursor may
	// drift past the origin before a non-empty buffer is compacted.
	DefaultReclaimThreshold = 1024
)

// Options configures queue creation.
type Options struct {
	idLimit   int32 // 0 means DefaultIDLimit
	reclaim   int   // 0 means DefaultReclaimThreshold, <0 disabled
	capacity  int   // Initial buffer allocation in bytes
	spinLimit int   // Consumer spin iterations before locking
}

// Builder creates queues with fluent configuration.
//
// Example:
//
//	// Shared queue accepting ids 0..63 with a 4 KiB initial inbox
//	q := pktq.New().IDLimit(64).InitialCapacity(4096).BuildShared()
//
//	// Producer-local queue that never compacts
//	local := pktq.New().ReclaimThreshold(0).BuildPacketQueue()
type Builder struct {
	opts Options
}

// New creates a queue builder with default options.
func New() *Builder {
	return &Builder{}
}

// IDLimit sets the exclusive upper bound on packet ids.
// Panics if n < 1 or n > math.MaxInt32.
func (b *Builder) IDLimit(n int) *Builder {
	if n < 1 || n > math.MaxInt32 {
		panic("pktq: id limit must be in [1, MaxInt32]")
	}
	b.opts.idLimit = int32(n)
	return b
}

// ReclaimThreshold sets the read offset, in bytes, past which a non-empty
// buffer is compacted after a pop. Zero disables reclamation; the buffer
// then compacts only when it drains.
// Panics if n < 0.
func (b *Builder) ReclaimThreshold(n int) *Builder {
	if n < 0 {
		panic("pktq: reclaim threshold must be >= 0")
	}
	if n == 0 {
		b.opts.reclaim = -1
	} else {
		b.opts.reclaim = n
	}
	return b
}

// InitialCapacity preallocates buffer space in bytes.
// Capacity rounds up to the next power of 2.
// Panics if n < 0.
func (b *Builder) InitialCapacity(n int) *Builder {
	if n < 0 {
		panic("pktq: capacity must be >= 0")
	}
	b.opts.capacity = n
	return b
}

// SpinLimit sets how many pause iterations the consumer of a [Shared]
// queue spends watching for producer activity before it takes the lock
// and sleeps. The default is 0: go straight to the condition variable.
// The spin reads the same counter as [Shared.Pending], so a non-zero limit
// is reported as a race under -race.
// Panics if n < 0.
func (b *Builder) SpinLimit(n int) *Builder {
	if n < 0 {
		panic("pktq: spin limit must be >= 0")
	}
	b.opts.spinLimit = n
	return b
}

// BuildPacketQueue creates a single-goroutine [PacketQueue].
func (b *Builder) BuildPacketQueue() *PacketQueue {
	q := &PacketQueue{}
	b.opts.apply(q)
	return q
}

// BuildShared creates a multi-producer [Shared] queue. The inbox and the
// consumer cache both receive the configured limits and capacity.
func (b *Builder) BuildShared() *Shared {
	q := &Shared{spinLimit: b.opts.spinLimit}
	q.cond.L = &q.mu
	b.opts.apply(&q.inbox)
	b.opts.apply(&q.cache)
	return q
}

func (o Options) apply(q *PacketQueue) {
	q.idLimit = o.idLimit
	q.reclaim = o.reclaim
	if o.capacity > 0 {
		q.buf = *NewByteBuffer(o.capacity)
	}
}
