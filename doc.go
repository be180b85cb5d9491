// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package pktq provides an in-process binary packet queue for handing
// variable-length, typed messages from many producer goroutines to one
// consumer goroutine with little lock contention.
//
// The package is built in layers:
//
//   - ByteBuffer: growable byte region with read and write cursors
//   - PacketQueue: single-goroutine FIFO of framed packets over a ByteBuffer
//   - Shared: mutex-guarded inbox plus a consumer-private cache
//   - Batcher: producer-local batching into a Shared queue
//
// A packet is an integer id and a byte payload. Ids must lie in
// [0, IDLimit); the limit (default 10000) is a sanity check, not a protocol
// constant.
//
// # Quick Start
//
//	q := pktq.NewShared()
//
//	// Producers (any number of goroutines)
//	go func() {
//	    q.Push(idData, payload)
//	    q.Push(idDone, nil)
//	}()
//
//	// Consumer (one goroutine)
//	for {
//	    id, payload := q.Consume()
//	    if id == idDone {
//	        break
//	    }
//	    handle(payload)
//	}
//
// # Double Buffering
//
// Producers push into the inbox under a mutex. The consumer pops from its
// cache without locking. When the cache is empty the consumer locks once
// and moves the entire inbox into the cache; the move exchanges buffers
// rather than copying bytes. Under steady load the consumer therefore pays
// one lock acquisition per burst instead of one per packet.
//
// # Batching
//
// A [Batcher] gives each producer a private [PacketQueue]. Packets collect
// there and are handed over with [Shared.PushMove], one lock acquisition
// per batch. A batch lands in the inbox as one contiguous run. Batching
// never changes which packets are delivered or the per-producer order.
//
//	b := pktq.NewBatcher(q, 64)
//	for _, rec := range records {
//	    b.Push(idData, rec)
//	}
//	b.Flush()
//
// # Completion
//
// The queue has no closed state. Producers announce completion with an
// application-defined sentinel id, and the consumer counts sentinels:
//
//	for done := 0; done < numProducers; {
//	    id, payload := q.Consume()
//	    if id == idDone {
//	        done++
//	        continue
//	    }
//	    handle(payload)
//	}
//
// # Cancellation
//
// [Shared.Consume] blocks without a deadline. [Shared.ConsumeContext],
// [Shared.ConsumeInto] and [Shared.ConsumeBuffer] return ctx.Err() when the
// context ends before a packet arrives. [Shared.TryConsume] never blocks
// and returns [ErrWouldBlock] instead:
//
//	ctx, cancel := context.WithTimeout(ctx, time.Second)
//	defer cancel()
//	id, payload, err := q.ConsumeContext(ctx)
//
// # Memory
//
// Buffers grow geometrically in powers of 2. A buffer that drains
// completely rewinds to its origin. A buffer that never drains, because a
// small backlog persists, is compacted once its read offset passes the
// reclaim threshold (default 1 KiB), and shrunk when mostly idle.
//
// # Error Handling
//
// Programming errors panic: an id outside [0, IDLimit), popping from an
// empty queue, a destination smaller than the packet payload, or an
// empty PushMove batch. Truncating or skipping would corrupt the framing
// of every later packet. Control flow conditions return [ErrWouldBlock],
// an alias of [code.hybscloud.com/iox.ErrWouldBlock].
//
// # Typed Payloads
//
// [PushValue] and [DecodeValue] carry fixed-size values in native byte
// order. [PushJSON] and [DecodeJSON] carry arbitrary values as JSON.
// [CPQueue] skips framing entirely for plain Go values.
//
// # Thread Safety
//
//   - ByteBuffer, PacketQueue, Batcher: one goroutine at a time
//   - Shared: Push, PushParts, PushMove from any goroutine; Consume
//     variants, TryConsume and Empty from the single consumer goroutine
//   - CPQueue: any goroutine
//
// # Diagnostics
//
// Builds tagged pktq_debug log refills, waits and reclamation through
// log/slog; see [SetLogger]. Untagged builds compile the calls away.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for counters with explicit memory ordering,
// [code.hybscloud.com/spin] for the consumer's optional spin phase, and
// [golang.org/x/sys/cpu] for cache line padding.
package pktq
