// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pktq

import (
	"encoding/binary"

	"github.com/sugawarayuuta/sonnet"
)

// PushValue pushes the in-memory image of a fixed-size value as the
// payload of one packet. T must be a fixed-size type in the sense of
// encoding/binary: numbers, bools, and arrays or structs of them.
//
// Example:
//
//	type Move struct{ X, Y int32 }
//	pktq.PushValue(q, idMove, &Move{X: 1, Y: 2})
func PushValue[T any](p Producer, id int, v *T) error {
	buf, err := binary.Append(nil, binary.NativeEndian, v)
	if err != nil {
		return err
	}
	p.Push(id, buf)
	return nil
}

// DecodeValue decodes a payload written by [PushValue] into v.
// Returns ErrPayloadSize if the payload length differs from the size of T.
func DecodeValue[T any](payload []byte, v *T) error {
	if binary.Size(v) != len(payload) {
		return ErrPayloadSize
	}
	_, err := binary.Decode(payload, binary.NativeEndian, v)
	return err
}

// PushJSON pushes the JSON encoding of v as the payload of one packet.
func PushJSON(p Producer, id int, v any) error {
	buf, err := sonnet.Marshal(v)
	if err != nil {
		return err
	}
	p.Push(id, buf)
	return nil
}

// DecodeJSON decodes a payload written by [PushJSON] into v.
func DecodeJSON(payload []byte, v any) error {
	return sonnet.Unmarshal(payload, v)
}
