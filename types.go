// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pktq

import "context"

// Producer is the interface for pushing packets.
//
// The payload is copied before Push returns, so the caller may reuse it
// immediately.
type Producer interface {
	// Push appends a packet with the given id and payload.
	//
	// Thread safety depends on the implementation:
	//   - PacketQueue, Batcher: owning goroutine only
	//   - Shared: any goroutine
	Push(id int, payload []byte)

	// PushParts appends one packet whose payload is the concatenation
	// of parts, without an intermediate copy.
	PushParts(id int, parts ...[]byte)
}

// Consumer is the interface for receiving packets.
//
// Only one goroutine may consume at a time.
type Consumer interface {
	// Consume blocks until a packet is available and returns it.
	Consume() (id int, payload []byte)

	// ConsumeContext is Consume with cancellation. It returns ctx.Err()
	// if ctx is done while no packet is available.
	ConsumeContext(ctx context.Context) (id int, payload []byte, err error)

	// TryConsume returns the next packet without blocking.
	// Returns ErrWouldBlock if none is available.
	TryConsume() (id int, payload []byte, err error)
}

var (
	_ Producer = (*PacketQueue)(nil)
	_ Producer = (*Shared)(nil)
	_ Producer = (*Batcher)(nil)
	_ Consumer = (*Shared)(nil)
)
