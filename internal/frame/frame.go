// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package frame encodes the fixed-size packet header.
//
// Layout contract:
// A header is the packet id followed by the payload size, both int32 in
// native byte order. The payload follows the header with no padding.
// Frames never leave the process, so the layout is not a wire format.
package frame

import "encoding/binary"

// HeaderSize is the encoded size of a packet header in bytes.
const HeaderSize = 8

// Put writes a header into dst. dst must hold at least HeaderSize bytes.
func Put(dst []byte, id, size int32) {
	_ = dst[HeaderSize-1]
	binary.NativeEndian.PutUint32(dst[0:4], uint32(id))
	binary.NativeEndian.PutUint32(dst[4:8], uint32(size))
}

// Read decodes the header at the start of src.
func Read(src []byte) (id, size int32) {
	_ = src[HeaderSize-1]
	id = int32(binary.NativeEndian.Uint32(src[0:4]))
	size = int32(binary.NativeEndian.Uint32(src[4:8]))
	return id, size
}
