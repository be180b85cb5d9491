// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pktq_test

import (
	"context"
	"fmt"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/pktq"
)

// ExamplePacketQueue demonstrates framing packets in a single goroutine.
func ExamplePacketQueue() {
	pq := pktq.NewPacketQueue()
	pq.Push(1, []byte("hello"))
	pq.PushParts(2, []byte("wor"), []byte("ld"))

	fmt.Println("packets:", pq.Len(), "bytes:", pq.Size())

	buf := make([]byte, 16)
	for !pq.Empty() {
		id, n := pq.Pop(buf)
		fmt.Printf("id=%d payload=%s\n", id, buf[:n])
	}

	// Output:
	// packets: 2 bytes: 26
	// id=1 payload=hello
	// id=2 payload=world
}

// ExampleShared demonstrates a producer goroutine feeding a consumer.
func ExampleShared() {
	const (
		idText = 0
		idDone = 1
	)
	q := pktq.NewShared()

	go func() {
		for _, s := range []string{"alpha", "beta", "gamma"} {
			q.Push(idText, []byte(s))
		}
		q.Push(idDone, nil)
	}()

	for {
		id, payload := q.Consume()
		if id == idDone {
			break
		}
		fmt.Println(string(payload))
	}

	// Output:
	// alpha
	// beta
	// gamma
}

// ExampleShared_TryConsume demonstrates polling with backoff.
func ExampleShared_TryConsume() {
	q := pktq.NewShared()
	go q.Push(3, []byte("polled"))

	backoff := iox.Backoff{}
	for {
		id, payload, err := q.TryConsume()
		if pktq.IsWouldBlock(err) {
			backoff.Wait()
			continue
		}
		backoff.Reset()
		fmt.Println(id, string(payload))
		break
	}

	// Output:
	// 3 polled
}

// ExampleShared_ConsumeContext demonstrates a bounded wait.
func ExampleShared_ConsumeContext() {
	q := pktq.NewShared()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, _, err := q.ConsumeContext(ctx)
	fmt.Println(err)

	// Output:
	// context deadline exceeded
}

// ExampleBatcher demonstrates producer-side batching.
func ExampleBatcher() {
	q := pktq.NewShared()
	b := pktq.NewBatcher(q, 4)

	for i := range 10 {
		b.Push(0, []byte{byte(i)})
	}
	b.Flush()

	sum := 0
	for !q.Empty() {
		_, payload := q.Consume()
		sum += int(payload[0])
	}
	fmt.Println("sum:", sum, "batches:", q.Stats().Batches)

	// Output:
	// sum: 45 batches: 3
}

// ExamplePushValue demonstrates fixed-size typed payloads.
func ExamplePushValue() {
	type point struct{ X, Y int32 }

	q := pktq.NewShared()
	if err := pktq.PushValue(q, 7, &point{X: 3, Y: -4}); err != nil {
		fmt.Println(err)
		return
	}

	id, payload := q.Consume()
	var p point
	if err := pktq.DecodeValue(payload, &p); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(id, p.X, p.Y)

	// Output:
	// 7 3 -4
}

// ExampleCPQueue demonstrates the typed blocking queue.
func ExampleCPQueue() {
	q := pktq.NewCPQueue[string]()
	go func() {
		q.Push("first")
		q.Push("second")
	}()

	fmt.Println(q.Consume())
	fmt.Println(q.Consume())

	// Output:
	// first
	// second
}
