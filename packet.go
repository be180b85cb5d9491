// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pktq

import (
	"math"

	"code.hybscloud.com/pktq/internal/frame"
)

// HeaderSize is the number of bytes each packet occupies in addition to
// its payload.
const HeaderSize = frame.HeaderSize

// PacketQueue is a single-goroutine FIFO of framed binary packets.
//
// Each packet is an id, a payload size and the payload bytes, stored back
// to back in one [ByteBuffer]. Push writes header and payload with a single
// contiguous write; Pop copies the payload out and discards the frame.
//
// The zero value is an empty queue with default limits. Use [Builder] to
// change the id limit or the reclamation threshold.
//
// PacketQueue is not safe for concurrent use. See [Shared] for the
// multi-producer variant.
type PacketQueue struct {
	buf     ByteBuffer
	n       int // packets outstanding
	idLimit int32
	reclaim int // <0 disabled, 0 default
}

// NewPacketQueue creates an empty queue with default limits.
func NewPacketQueue() *PacketQueue {
	return &PacketQueue{}
}

func (q *PacketQueue) limit() int32 {
	if q.idLimit == 0 {
		return DefaultIDLimit
	}
	return q.idLimit
}

func (q *PacketQueue) reclaimThreshold() int {
	if q.reclaim == 0 {
		return DefaultReclaimThreshold
	}
	return q.reclaim
}

func (q *PacketQueue) checkID(id int) {
	if id < 0 || id >= int(q.limit()) {
		panic("pktq: packet id out of range")
	}
}

// Push appends a packet.
//
// Panics if id is outside [0, IDLimit) or the payload exceeds math.MaxInt32
// bytes.
func (q *PacketQueue) Push(id int, payload []byte) {
	q.checkID(id)
	checkPayloadSize(len(payload))
	q.put(id, payload)
}

// PushParts appends one packet whose payload is the concatenation of parts.
func (q *PacketQueue) PushParts(id int, parts ...[]byte) {
	q.checkID(id)
	q.putParts(id, partsSize(parts), parts)
}

func checkPayloadSize(n int) {
	if n > math.MaxInt32 {
		panic("pktq: payload too large")
	}
}

// partsSize returns the combined length of parts.
// Panics if it exceeds math.MaxInt32.
func partsSize(parts [][]byte) int {
	total := 0
	for _, part := range parts {
		total += len(part)
		checkPayloadSize(total)
	}
	return total
}

// put writes one frame. id and the payload size are already validated.
func (q *PacketQueue) put(id int, payload []byte) {
	p := q.buf.Extend(HeaderSize + len(payload))
	frame.Put(p, int32(id), int32(len(payload)))
	copy(p[HeaderSize:], payload)
	q.n++
}

// putParts writes one frame of total payload bytes gathered from parts.
func (q *PacketQueue) putParts(id, total int, parts [][]byte) {
	p := q.buf.Extend(HeaderSize + total)
	frame.Put(p, int32(id), int32(total))
	off := HeaderSize
	for _, part := range parts {
		off += copy(p[off:], part)
	}
	q.n++
}

// header returns the id and payload of the front packet without consuming
// it. The payload aliases the buffer.
func (q *PacketQueue) header() (id int, payload []byte) {
	live := q.buf.Bytes()
	if len(live) < HeaderSize {
		panic("pktq: pop from empty queue")
	}
	fid, size := frame.Read(live)
	if size < 0 || HeaderSize+int(size) > len(live) {
		panic("pktq: corrupt packet frame")
	}
	return int(fid), live[HeaderSize : HeaderSize+int(size)]
}

// discard drops the front packet of the given payload size and runs the
// reclamation step.
func (q *PacketQueue) discard(size int) {
	q.buf.DeleteFront(HeaderSize + size)
	q.n--
	if t := q.reclaimThreshold(); t > 0 && q.buf.Compact(t) {
		logDebug("pktq: reclaimed buffer", "live", q.buf.Len(), "cap", q.buf.Cap())
	}
}

// Pop removes the front packet and copies its payload into dst.
// Returns the packet id and the number of bytes written.
//
// Panics if the queue is empty or len(dst) is smaller than the payload.
// Truncating would leave the caller with a partial packet, so a short
// destination is treated as a programming error.
func (q *PacketQueue) Pop(dst []byte) (id, n int) {
	id, payload := q.header()
	if len(dst) < len(payload) {
		panic("pktq: destination smaller than packet payload")
	}
	n = copy(dst, payload)
	q.discard(n)
	return id, n
}

// PopBuffer removes the front packet and appends its payload to dst.
// Returns the packet id.
//
// Panics if the queue is empty.
func (q *PacketQueue) PopBuffer(dst *ByteBuffer) int {
	id, payload := q.header()
	dst.Append(payload)
	q.discard(len(payload))
	return id
}

// PopBytes removes the front packet and returns its id with a copy of its
// payload. Empty payloads are returned as nil.
//
// Panics if the queue is empty.
func (q *PacketQueue) PopBytes() (id int, payload []byte) {
	id, p := q.header()
	if len(p) > 0 {
		payload = make([]byte, len(p))
		copy(payload, p)
	}
	q.discard(len(p))
	return id, payload
}

// Peek returns the id of the front packet without removing it.
//
// Panics if the queue is empty.
func (q *PacketQueue) Peek() int {
	id, _ := q.header()
	return id
}

// PeekSize returns the payload size of the front packet.
//
// Panics if the queue is empty.
func (q *PacketQueue) PeekSize() int {
	_, p := q.header()
	return len(p)
}

// Empty reports whether the queue holds no packets.
func (q *PacketQueue) Empty() bool {
	return q.buf.Empty()
}

// Size returns the number of bytes outstanding, headers included.
func (q *PacketQueue) Size() int {
	return q.buf.Len()
}

// Len returns the number of packets outstanding.
func (q *PacketQueue) Len() int {
	return q.n
}

// Cap returns the size of the backing allocation.
func (q *PacketQueue) Cap() int {
	return q.buf.Cap()
}

// Reset discards all packets and keeps the allocation.
func (q *PacketQueue) Reset() {
	q.buf.Reset()
	q.n = 0
}

// Move transfers every packet of q to the back of dst and leaves q empty.
// When dst is empty this is O(1); otherwise q's bytes are copied after
// dst's backlog. Limits are not transferred.
//
// Panics if dst == q.
func (q *PacketQueue) Move(dst *PacketQueue) {
	if dst == q {
		panic("pktq: move to self")
	}
	q.buf.Move(&dst.buf)
	dst.n += q.n
	q.n = 0
}
