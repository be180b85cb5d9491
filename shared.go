// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pktq

import (
	"context"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"golang.org/x/sys/cpu"
)

// Shared is a multi-producer single-consumer packet queue.
//
// Producers push into an inbox guarded by a mutex. The consumer owns a
// second queue, the cache, which it drains without locking. Only when the
// cache runs dry does the consumer take the lock and move the whole inbox
// into the cache in one step, so a single lock acquisition is amortized
// over every packet that arrived since the last refill.
//
//	producers ─Push/PushMove─▶ inbox ─refill (locked)─▶ cache ─Pop─▶ consumer
//
// Ordering: packets from one producer goroutine are consumed in the order
// that goroutine pushed them. No order is defined across producers beyond
// mutex acquisition order. A PushMove batch lands as one contiguous run.
//
// The queue has no closed state. Producers signal completion in-band with
// an application-defined sentinel id.
//
// Single consumer is the supported contract. Several consumers would race
// on the cache; they must be serialized by the caller.
//
// A Shared must be created with [NewShared] or [Builder.BuildShared].
type Shared struct {
	mu      sync.Mutex
	cond    sync.Cond
	inbox   PacketQueue   // guarded by mu
	pending atomix.Uint64 // inbox bytes; written under mu
	pushes  atomix.Uint64
	batches atomix.Uint64
	_       cpu.CacheLinePad

	cache     PacketQueue // consumer only, never under mu
	spinLimit int
	refills   atomix.Uint64
	waits     atomix.Uint64
}

// Stats is a snapshot of queue activity counters.
type Stats struct {
	Pushes  uint64 // Push and PushParts calls
	Batches uint64 // PushMove calls
	Refills uint64 // inbox to cache moves
	Waits   uint64 // condition variable sleeps
}

// NewShared creates a Shared queue with default options.
func NewShared() *Shared {
	return New().BuildShared()
}

// Push appends a packet to the inbox and wakes the consumer.
// Safe for concurrent use by multiple producers. Never blocks beyond
// mutex acquisition.
//
// Panics if id is outside [0, IDLimit) or the payload exceeds
// math.MaxInt32 bytes. Arguments are validated before the lock is taken.
func (q *Shared) Push(id int, payload []byte) {
	q.inbox.checkID(id)
	checkPayloadSize(len(payload))
	q.mu.Lock()
	q.inbox.put(id, payload)
	q.publish()
	q.pushes.Add(1)
	q.mu.Unlock()
}

// PushParts appends one packet whose payload is the concatenation of parts.
// Safe for concurrent use by multiple producers.
func (q *Shared) PushParts(id int, parts ...[]byte) {
	q.inbox.checkID(id)
	total := partsSize(parts)
	q.mu.Lock()
	q.inbox.putParts(id, total, parts)
	q.publish()
	q.pushes.Add(1)
	q.mu.Unlock()
}

// PushMove moves every packet of batch into the inbox under a single lock
// acquisition and leaves batch empty. The batch is inserted as one
// contiguous run relative to other producers.
//
// When the inbox is empty the move exchanges buffers without copying;
// otherwise the batch bytes are copied behind the inbox backlog.
//
// batch must be private to the calling goroutine.
// Panics if batch is empty.
func (q *Shared) PushMove(batch *PacketQueue) {
	if batch.Empty() {
		panic("pktq: PushMove with empty batch")
	}
	q.mu.Lock()
	batch.Move(&q.inbox)
	q.publish()
	q.batches.Add(1)
	q.mu.Unlock()
}

// publish records the inbox size and wakes one waiting consumer.
// Caller holds mu.
func (q *Shared) publish() {
	q.pending.StoreRelease(uint64(q.inbox.Size()))
	q.cond.Signal()
}

// Consume blocks until a packet is available and returns it.
// The payload is a fresh copy owned by the caller.
//
// Consumer goroutine only.
func (q *Shared) Consume() (id int, payload []byte) {
	_ = q.refill(context.Background(), true)
	return q.cache.PopBytes()
}

// ConsumeContext is [Shared.Consume] with cancellation.
//
// A packet that is already available is returned even if ctx is done.
// Otherwise ConsumeContext waits until a producer pushes or ctx is done,
// in which case it returns ctx.Err(). Use context.WithTimeout for a
// bounded wait.
func (q *Shared) ConsumeContext(ctx context.Context) (id int, payload []byte, err error) {
	if err = q.refill(ctx, true); err != nil {
		return 0, nil, err
	}
	id, payload = q.cache.PopBytes()
	return id, payload, nil
}

// ConsumeInto waits like [Shared.ConsumeContext] and copies the payload
// into dst. Returns the packet id and the number of bytes written.
//
// Panics if dst is smaller than the payload.
func (q *Shared) ConsumeInto(ctx context.Context, dst []byte) (id, n int, err error) {
	if err = q.refill(ctx, true); err != nil {
		return 0, 0, err
	}
	id, n = q.cache.Pop(dst)
	return id, n, nil
}

// ConsumeBuffer waits like [Shared.ConsumeContext] and appends the payload
// to dst. Returns the packet id.
func (q *Shared) ConsumeBuffer(ctx context.Context, dst *ByteBuffer) (id int, err error) {
	if err = q.refill(ctx, true); err != nil {
		return 0, err
	}
	return q.cache.PopBuffer(dst), nil
}

// TryConsume returns the next packet without blocking.
// Returns ErrWouldBlock if both the cache and the inbox are empty.
func (q *Shared) TryConsume() (id int, payload []byte, err error) {
	if err = q.refill(context.Background(), false); err != nil {
		return 0, nil, err
	}
	id, payload = q.cache.PopBytes()
	return id, payload, nil
}

// refill guarantees a non-empty cache on nil return.
//
// Cache hit: return without locking. Cache miss: optionally spin, lock,
// re-check the inbox (the unlocked check is racy), sleep on the condition
// variable until the inbox has data, then move the inbox into the cache.
func (q *Shared) refill(ctx context.Context, block bool) error {
	if !q.cache.Empty() {
		return nil
	}
	if block && q.spinLimit > 0 {
		q.spin()
	}

	q.mu.Lock()
	if q.inbox.Empty() {
		if !block {
			q.mu.Unlock()
			return ErrWouldBlock
		}
		if err := q.wait(ctx); err != nil {
			q.mu.Unlock()
			return err
		}
	}
	q.inbox.Move(&q.cache)
	q.pending.StoreRelease(0)
	q.mu.Unlock()

	q.refills.Add(1)
	logDebug("pktq: refill", "packets", q.cache.Len(), "bytes", q.cache.Size())
	return nil
}

// wait sleeps until the inbox is non-empty or ctx is done.
// Caller holds mu; wait returns with mu held.
func (q *Shared) wait(ctx context.Context) error {
	if ctx.Done() != nil {
		// Broadcast under mu so a cancellation cannot slip in between the
		// ctx.Err check and cond.Wait.
		stop := context.AfterFunc(ctx, func() {
			q.mu.Lock()
			q.cond.Broadcast()
			q.mu.Unlock()
		})
		defer stop()
	}
	for q.inbox.Empty() {
		if err := ctx.Err(); err != nil {
			return err
		}
		q.waits.Add(1)
		logDebug("pktq: consumer waiting")
		q.cond.Wait()
	}
	return nil
}

// spin watches the published inbox size for up to spinLimit pauses.
func (q *Shared) spin() {
	sw := spin.Wait{}
	for i := 0; i < q.spinLimit; i++ {
		if q.pending.LoadAcquire() != 0 {
			return
		}
		sw.Once()
	}
}

// Empty reports whether no packet is waiting.
//
// The result is advisory while producers are active. Once every producer
// has finished it is exact, which makes it suitable for drain checks.
// Consumer goroutine only.
func (q *Shared) Empty() bool {
	if !q.cache.Empty() {
		return false
	}
	q.mu.Lock()
	empty := q.inbox.Empty()
	q.mu.Unlock()
	return empty
}

// Pending returns the number of inbox bytes published by producers and
// not yet moved to the consumer cache. Lock-free and approximate.
//
// The counter uses acquire/release ordering that the race detector does
// not see as synchronization; calling Pending while producers push is
// reported as a race under -race.
func (q *Shared) Pending() int {
	return int(q.pending.LoadAcquire())
}

// Stats returns a snapshot of the activity counters.
func (q *Shared) Stats() Stats {
	return Stats{
		Pushes:  q.pushes.Load(),
		Batches: q.batches.Load(),
		Refills: q.refills.Load(),
		Waits:   q.waits.Load(),
	}
}
