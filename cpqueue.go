// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pktq

import (
	"context"
	"sync"

	"github.com/eapache/queue"
)

// CPQueue is an unbounded blocking FIFO of Go values.
//
// It is the typed counterpart of [Shared] for values that are not worth
// framing into bytes: every operation takes the mutex, and Consume sleeps
// on a condition variable while the queue is empty.
//
// Unlike Shared, CPQueue is safe for any number of producers and
// consumers.
//
// Example:
//
//	q := pktq.NewCPQueue[*Request]()
//	go func() { q.Push(req) }()
//	req := q.Consume()
type CPQueue[T any] struct {
	mu    sync.Mutex
	cond  sync.Cond
	items *queue.Queue
}

// NewCPQueue creates an empty CPQueue.
func NewCPQueue[T any]() *CPQueue[T] {
	q := &CPQueue[T]{items: queue.New()}
	q.cond.L = &q.mu
	return q
}

// Push appends v and wakes one waiting consumer.
func (q *CPQueue[T]) Push(v T) {
	q.mu.Lock()
	q.items.Add(v)
	q.cond.Signal()
	q.mu.Unlock()
}

// Consume blocks until a value is available and removes it.
func (q *CPQueue[T]) Consume() T {
	v, _ := q.ConsumeContext(context.Background())
	return v
}

// ConsumeContext is Consume with cancellation.
// Returns ctx.Err() if ctx is done while the queue is empty.
func (q *CPQueue[T]) ConsumeContext(ctx context.Context) (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.Length() == 0 && ctx.Done() != nil {
		stop := context.AfterFunc(ctx, func() {
			q.mu.Lock()
			q.cond.Broadcast()
			q.mu.Unlock()
		})
		defer stop()
	}
	for q.items.Length() == 0 {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		q.cond.Wait()
	}
	return q.remove(), nil
}

// TryConsume removes and returns the front value without blocking.
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *CPQueue[T]) TryConsume() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.items.Length() == 0 {
		var zero T
		return zero, ErrWouldBlock
	}
	return q.remove(), nil
}

// remove pops the front value. Caller holds mu.
func (q *CPQueue[T]) remove() T {
	// A nil interface value fails the assertion and yields the zero T,
	// which is what was pushed.
	v, _ := q.items.Remove().(T)
	return v
}

// Len returns the number of queued values.
func (q *CPQueue[T]) Len() int {
	q.mu.Lock()
	n := q.items.Length()
	q.mu.Unlock()
	return n
}
