// Package dproxytest contains helpers for testing code built on dproxy.
package dproxytest

import (
	"sync"
	"testing"
	"time"

	"github.com/gordian-engine/dproxy"
	"github.com/stretchr/testify/require"
)

// RecordingConsumer is a [dproxy.Consumer] that records every value and error.
// It requests a configurable amount on subscribe,
// and further demand is added explicitly through [*RecordingConsumer.RequestMore].
type RecordingConsumer[T any] struct {
	initialRequest int64

	mu     sync.Mutex
	sub    dproxy.Subscription
	values []T
	errs   []error

	// Optional hook invoked from OnNext before the value is recorded.
	// A non-nil return value is returned from OnNext,
	// which cancels the subscription.
	NextHook func(T) error
}

// NewRecordingConsumer returns a consumer that requests initialRequest values on subscribe.
// Use math.MaxInt64 for effectively unbounded demand.
func NewRecordingConsumer[T any](initialRequest int64) *RecordingConsumer[T] {
	return &RecordingConsumer[T]{initialRequest: initialRequest}
}

func (c *RecordingConsumer[T]) OnSubscribe(s dproxy.Subscription) {
	c.mu.Lock()
	c.sub = s
	c.mu.Unlock()

	if c.initialRequest > 0 {
		if err := s.Request(c.initialRequest); err != nil {
			panic(err)
		}
	}
}

func (c *RecordingConsumer[T]) OnNext(v T) error {
	if c.NextHook != nil {
		if err := c.NextHook(v); err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = append(c.values, v)
	return nil
}

func (c *RecordingConsumer[T]) OnError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, err)
}

// Subscription returns the subscription passed to OnSubscribe,
// or nil if the consumer has not been subscribed.
func (c *RecordingConsumer[T]) Subscription() dproxy.Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sub
}

// RequestMore requests n more values on the recorded subscription.
func (c *RecordingConsumer[T]) RequestMore(n int64) error {
	return c.Subscription().Request(n)
}

// Values returns a copy of the values received so far.
func (c *RecordingConsumer[T]) Values() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.values...)
}

// Errors returns a copy of the errors received so far.
func (c *RecordingConsumer[T]) Errors() []error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]error(nil), c.errs...)
}

// Count returns the number of values received so far.
func (c *RecordingConsumer[T]) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}

// WaitForCount fails the test if the consumer
// has not received at least n values within a couple seconds.
func (c *RecordingConsumer[T]) WaitForCount(t *testing.T, n int) {
	t.Helper()

	require.Eventuallyf(t, func() bool {
		return c.Count() >= n
	}, 2*time.Second, time.Millisecond, "expected at least %d values", n)
}

// RequireCountStays fails the test if the number of received values
// changes from n at any point during d.
// Use it to show that nothing further is delivered.
func (c *RecordingConsumer[T]) RequireCountStays(t *testing.T, n int, d time.Duration) {
	t.Helper()

	require.Equal(t, n, c.Count())
	require.Never(t, func() bool {
		return c.Count() != n
	}, d, time.Millisecond)
}
