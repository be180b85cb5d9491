// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pktq

// Batcher accumulates packets in a producer-local queue and hands them to
// a [Shared] queue with one [Shared.PushMove] per batch, cutting lock
// acquisitions from one per packet to one per batch.
//
// Each producer goroutine owns its own Batcher. Batcher is not safe for
// concurrent use.
//
// Packets stay local until the batch fills or Flush is called. Producers
// must Flush before emitting their sentinel, or push the sentinel through
// the Batcher and Flush after it.
//
// Example:
//
//	b := pktq.NewBatcher(q, 64)
//	for _, rec := range records {
//	    b.Push(idRecord, rec)
//	}
//	b.Push(idDone, nil)
//	b.Flush()
type Batcher struct {
	q     *Shared
	local PacketQueue
	size  int
}

// NewBatcher creates a Batcher that flushes to q every size packets.
// A size <= 1 flushes on every push.
//
// Panics if q is nil.
func NewBatcher(q *Shared, size int) *Batcher {
	if q == nil {
		panic("pktq: nil queue")
	}
	b := &Batcher{q: q, size: max(size, 1)}
	b.local.idLimit = q.inbox.idLimit
	b.local.reclaim = -1
	return b
}

// Push appends a packet to the local batch, flushing when it is full.
//
// Panics if id is outside the target queue's [0, IDLimit).
func (b *Batcher) Push(id int, payload []byte) {
	b.local.Push(id, payload)
	if b.local.Len() >= b.size {
		b.Flush()
	}
}

// PushParts appends one packet whose payload is the concatenation of parts.
func (b *Batcher) PushParts(id int, parts ...[]byte) {
	b.local.PushParts(id, parts...)
	if b.local.Len() >= b.size {
		b.Flush()
	}
}

// Flush moves all pending packets to the shared queue.
// Does nothing when no packet is pending.
func (b *Batcher) Flush() {
	if b.local.Empty() {
		return
	}
	b.q.PushMove(&b.local)
}

// Len returns the number of packets waiting to be flushed.
func (b *Batcher) Len() int {
	return b.local.Len()
}
