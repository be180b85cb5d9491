// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package pktq

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates the operation cannot proceed immediately.
//
// Returned by TryConsume when both the consumer cache and the inbox are
// empty. It is a control flow signal, not a failure: retry later, or call
// a blocking Consume variant instead.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    id, payload, err := q.TryConsume()
//	    if pktq.IsWouldBlock(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    backoff.Reset()
//	    handle(id, payload)
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// ErrPayloadSize reports that a payload does not match the size of the
// value it is decoded into.
var ErrPayloadSize = errors.New("pktq: payload size mismatch")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
