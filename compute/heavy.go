// Package compute provides the app's stand-in for an expensive operation.
package compute

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultDelay is how long Heavy pretends to work when Delay is unset.
const DefaultDelay = 2 * time.Second

// Heavy waits Delay, then returns Result. It satisfies vm.Computation.
type Heavy struct {
	Delay  time.Duration
	Result string
	Logger *zap.SugaredLogger

	calls atomic.Int64
}

// NewHeavy returns a Heavy with the given delay and result.
// A non-positive delay falls back to DefaultDelay.
func NewHeavy(delay time.Duration, result string, logger *zap.SugaredLogger) *Heavy {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Heavy{Delay: delay, Result: result, Logger: logger}
}

// Compute blocks for Delay or until ctx is done.
func (h *Heavy) Compute(ctx context.Context) (string, error) {
	n := h.calls.Add(1)
	h.logger().Debugf("computation #%d started (delay %s)", n, h.Delay)

	timer := time.NewTimer(h.Delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		h.logger().Debugf("computation #%d done", n)
		return h.Result, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Calls reports how many times Compute has been invoked.
func (h *Heavy) Calls() int64 {
	return h.calls.Load()
}

func (h *Heavy) logger() *zap.SugaredLogger {
	if h.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return h.Logger
}
