package enrich

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zoobzio/clockz"
)

// ErrTimeout is the cause reported when the time bound elapsed first.
var ErrTimeout = errors.New("enrich: timed out")

// Task is a context-aware unit of work producing a T.
type Task[T any] func(ctx context.Context) (T, error)

// WithTimeoutFallback races task against a timer of duration d measured on
// clock. If task returns a value first, that value is returned with a nil
// error. Otherwise fallback is returned together with the cause: ErrTimeout
// (wrapped), the task's own error, or the parent context's error.
//
// The returned error is informational; callers that only want the degraded
// value can ignore it. The task's context is canceled before returning, so a
// task honouring its context never outlives the call. Partial results of a
// timed out task are discarded.
func WithTimeoutFallback[T any](ctx context.Context, clock clockz.Clock, d time.Duration, fallback T, task Task[T]) (T, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Arm the timer before starting the task so the race starts at invocation.
	expired := clock.After(d)

	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		v, err := task(ctx)
		done <- result{value: v, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return fallback, r.err
		}
		return r.value, nil
	case <-expired:
		return fallback, fmt.Errorf("%w after %s", ErrTimeout, d)
	case <-ctx.Done():
		return fallback, ctx.Err()
	}
}
