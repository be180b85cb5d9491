// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pktq_test

import (
	"testing"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	ring "github.com/randomizedcoder/go-lock-free-ring"

	"code.hybscloud.com/pktq"
)

var benchPayload = make([]byte, 32)

// =============================================================================
// Single Goroutine
// =============================================================================

func BenchmarkPacketQueuePushPop(b *testing.B) {
	pq := pktq.NewPacketQueue()
	buf := make([]byte, len(benchPayload))
	b.SetBytes(int64(len(benchPayload)))
	b.ReportAllocs()

	for b.Loop() {
		pq.Push(0, benchPayload)
		pq.Pop(buf)
	}
}

func BenchmarkPacketQueueBacklog(b *testing.B) {
	pq := pktq.NewPacketQueue()
	buf := make([]byte, len(benchPayload))
	for range 16 {
		pq.Push(0, benchPayload)
	}
	b.ReportAllocs()

	for b.Loop() {
		pq.Push(0, benchPayload)
		pq.Pop(buf)
	}
}

func BenchmarkSharedPushConsume(b *testing.B) {
	q := pktq.NewShared()
	buf := make([]byte, len(benchPayload))
	b.ReportAllocs()

	for b.Loop() {
		q.Push(0, benchPayload)
		q.ConsumeInto(b.Context(), buf)
	}
}

// =============================================================================
// MPSC: N Producers → 1 Consumer
// =============================================================================

// runConsumer polls q with TryConsume until done is closed.
func runConsumer(q *pktq.Shared, done <-chan struct{}) <-chan struct{} {
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		backoff := iox.Backoff{}
		for {
			select {
			case <-done:
				return
			default:
			}
			if _, _, err := q.TryConsume(); err != nil {
				backoff.Wait()
				continue
			}
			backoff.Reset()
		}
	}()
	return consumerDone
}

// runBlockingConsumer drains q with Consume until it sees idStop.
func runBlockingConsumer(q *pktq.Shared) <-chan struct{} {
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		for {
			if id, _ := q.Consume(); id == idStop {
				return
			}
		}
	}()
	return consumerDone
}

const idStop = 1

func benchmarkShared(b *testing.B, producers int) {
	q := pktq.NewShared()
	done := make(chan struct{})
	consumerDone := runConsumer(q, done)

	b.SetParallelism(producers)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			q.Push(0, benchPayload)
		}
	})

	b.StopTimer()
	close(done)
	<-consumerDone
}

func benchmarkSharedBlocking(b *testing.B, producers int) {
	q := pktq.NewShared()
	consumerDone := runBlockingConsumer(q)

	b.SetParallelism(producers)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			q.Push(0, benchPayload)
		}
	})

	b.StopTimer()
	q.Push(idStop, nil)
	<-consumerDone
}

func benchmarkBatcher(b *testing.B, producers, size int) {
	q := pktq.NewShared()
	done := make(chan struct{})
	consumerDone := runConsumer(q, done)

	b.SetParallelism(producers)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		bt := pktq.NewBatcher(q, size)
		for pb.Next() {
			bt.Push(0, benchPayload)
		}
		bt.Flush()
	})

	b.StopTimer()
	close(done)
	<-consumerDone
}

func BenchmarkShared_4P(b *testing.B) { benchmarkShared(b, 4) }
func BenchmarkShared_8P(b *testing.B) { benchmarkShared(b, 8) }
func BenchmarkSharedBlocking_4P(b *testing.B) { benchmarkSharedBlocking(b, 4) }
func BenchmarkSharedBlocking_8P(b *testing.B) { benchmarkSharedBlocking(b, 8) }
func BenchmarkBatcher_4P_Batch8(b *testing.B) { benchmarkBatcher(b, 4, 8) }
func BenchmarkBatcher_4P_Batch64(b *testing.B) { benchmarkBatcher(b, 4, 64) }
func BenchmarkBatcher_8P_Batch64(b *testing.B) { benchmarkBatcher(b, 8, 64) }

// BenchmarkChannel_4P - 4 producers using a buffered channel of payloads
func BenchmarkChannel_4P(b *testing.B) {
	ch := make(chan []byte, 1024)
	done := make(chan struct{})
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		for {
			select {
			case <-done:
				return
			case <-ch:
			}
		}
	}()

	b.SetParallelism(4)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			p := make([]byte, len(benchPayload))
			copy(p, benchPayload)
			select {
			case ch <- p:
			case <-done:
				return
			}
		}
	})

	b.StopTimer()
	close(done)
	<-consumerDone
}

// BenchmarkLockFreeRing_4P_4S - 4 producers, 4 shards of go-lock-free-ring
func BenchmarkLockFreeRing_4P_4S(b *testing.B) {
	r, _ := ring.NewShardedRing(1024, 4)
	done := make(chan struct{})
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		backoff := iox.Backoff{}
		for {
			select {
			case <-done:
				return
			default:
			}
			if _, ok := r.TryRead(); !ok {
				backoff.Wait()
				continue
			}
			backoff.Reset()
		}
	}()

	var producerID atomix.Uint64
	b.SetParallelism(4)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		pid := producerID.Add(1) - 1
		backoff := iox.Backoff{}
		for pb.Next() {
			p := make([]byte, len(benchPayload))
			copy(p, benchPayload)
			for !r.Write(pid, p) {
				backoff.Wait()
			}
			backoff.Reset()
		}
	})

	b.StopTimer()
	close(done)
	<-consumerDone
}
