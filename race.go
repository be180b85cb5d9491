// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package pktq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent tests that exercise the lock-free
// pending counter, whose acquire/release accesses the detector does not
// model.
const RaceEnabled = true
