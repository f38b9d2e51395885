package testutil

import (
	"context"
	"testing"
	"time"
)

const (
	// DefaultStreamTimeout is the default timeout for tests that wait on
	// the push stream (subscribe, replay, reconnect).
	DefaultStreamTimeout = 30 * time.Second

	// DefaultTestBuffer is the buffer time subtracted from the test
	// deadline to allow for cleanup before the test times out.
	DefaultTestBuffer = 5 * time.Second
)

// ContextWithTestDeadline creates a context that respects the test's deadline.
// It subtracts a buffer from the test deadline to allow time for cleanup.
// If the test has no deadline, it falls back to the provided fallback duration.
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    ctx, cancel := testutil.ContextWithTestDeadline(t, 30*time.Second)
//	    defer cancel()
//	    // ... test code using ctx
//	}
func ContextWithTestDeadline(t *testing.T, fallback time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()

	if deadline, ok := t.Deadline(); ok {
		adjusted := deadline.Add(-DefaultTestBuffer)
		// Only use the adjusted deadline if it's still in the future.
		if time.Until(adjusted) > 0 {
			return context.WithDeadline(context.Background(), adjusted)
		}
	}

	return context.WithTimeout(context.Background(), fallback)
}

// StreamContext creates a context with a standard timeout for stream
// operations. It respects the test deadline if one is set.
func StreamContext(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return ContextWithTestDeadline(t, DefaultStreamTimeout)
}
