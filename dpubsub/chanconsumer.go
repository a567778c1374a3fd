package dpubsub

import (
	"context"
	"errors"
	"fmt"

	"github.com/gordian-engine/dproxy"
)

// ChanConsumer is a [dproxy.Consumer] that buffers values in a Go channel
// and only requests as many values as the buffer can hold.
//
// It starts by requesting the buffer size,
// and each successful [*ChanConsumer.Recv] requests one more value,
// so a slow reader applies backpressure instead of dropping values.
type ChanConsumer[T any] struct {
	ch   chan T
	errs chan error

	// Set in OnSubscribe, which happens before Subscribe returns,
	// so it is safe to read from Recv without further synchronization.
	sub dproxy.Subscription
}

// errBufferFull is only returned if the proxy delivered beyond requested demand.
var errBufferFull = errors.New("BUG: ChanConsumer received value without buffer space")

// NewChanConsumer returns a consumer with room for size values.
// It panics if size is not positive.
func NewChanConsumer[T any](size int) *ChanConsumer[T] {
	if size <= 0 {
		panic(fmt.Errorf("BUG: ChanConsumer size must be positive (got %d)", size))
	}

	return &ChanConsumer[T]{
		ch:   make(chan T, size),
		errs: make(chan error, 1),
	}
}

func (c *ChanConsumer[T]) OnSubscribe(s dproxy.Subscription) {
	c.sub = s
	_ = s.Request(int64(cap(c.ch)))
}

func (c *ChanConsumer[T]) OnNext(v T) error {
	select {
	case c.ch <- v:
		return nil
	default:
		return errBufferFull
	}
}

func (c *ChanConsumer[T]) OnError(err error) {
	select {
	case c.errs <- err:
	default:
		// Only the first error is retained.
	}
}

// Recv blocks until a value is available, the subscription fails,
// or ctx is canceled.
//
// Buffered values are returned before a subscription failure is reported.
func (c *ChanConsumer[T]) Recv(ctx context.Context) (T, error) {
	var zero T

	// Drain buffered values first.
	select {
	case v := <-c.ch:
		return v, c.requestOne()
	default:
	}

	select {
	case <-ctx.Done():
		return zero, fmt.Errorf(
			"context canceled while waiting for value: %w", context.Cause(ctx),
		)

	case v := <-c.ch:
		return v, c.requestOne()

	case err := <-c.errs:
		// Put the error back so later calls also observe it.
		c.OnError(err)
		return zero, err
	}
}

func (c *ChanConsumer[T]) requestOne() error {
	if err := c.sub.Request(1); err != nil {
		return fmt.Errorf("failed to request next value: %w", err)
	}
	return nil
}

// Cancel cancels the underlying subscription.
// Values already buffered can still be received.
func (c *ChanConsumer[T]) Cancel() {
	c.sub.Cancel()
}
