// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !pktq_debug

package pktq

import "log/slog"

// SetLogger replaces the logger used for queue diagnostics.
// Diagnostics are only emitted in builds tagged pktq_debug; otherwise this
// does nothing.
func SetLogger(l *slog.Logger) {}

// logDebug compiles away in release builds.
func logDebug(msg string, args ...any) {}
