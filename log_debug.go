// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build pktq_debug

package pktq

import (
	"log/slog"
	"os"

	"code.hybscloud.com/atomix"
)

var logger atomix.Pointer[slog.Logger]

func init() {
	logger.StoreRelease(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

// SetLogger replaces the logger used for queue diagnostics.
// A nil logger is ignored. Under the race detector, set the logger before
// queues are in use.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger.StoreRelease(l)
	}
}

func logDebug(msg string, args ...any) {
	logger.LoadAcquire().Debug(msg, args...)
}
