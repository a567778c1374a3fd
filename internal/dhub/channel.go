package dhub

import (
	"math"
	"sync/atomic"

	"github.com/gordian-engine/dproxy/dsched"
	"github.com/gordian-engine/dproxy/internal/dqueue"
	"github.com/google/uuid"
)

// Consumer is the subset of a subscriber that a [Channel] delivers to.
type Consumer[T any] interface {
	// OnNext receives one value.
	// Returning a non-nil error cancels the channel,
	// and the error is reported back through OnError wrapped in a [ConsumerError].
	OnNext(T) error

	OnError(error)
}

// Channel is the delivery state for a single subscription.
//
// Values are offered to the channel through its worker,
// and the channel emits them to the consumer
// only as far as the consumer's outstanding demand allows.
//
// Channel satisfies the Subscription interface of the root package.
type Channel[T any] struct {
	id uuid.UUID

	consumer Consumer[T]
	worker   dsched.Worker

	queue *dqueue.MPSC[T]

	// Requested but not yet emitted.
	// Never negative, and saturates at math.MaxInt64.
	demand atomic.Int64

	// The drain guard.
	//
	//   0: idle.
	//   0 -> 1: the goroutine making that transition owns the emission loop.
	//   >1: more work arrived while a drain was active;
	//       the owner observes this when decrementing and runs another pass.
	wip atomic.Int32

	cancelled atomic.Bool

	// Called once, on the first Cancel.
	onCancel func(*Channel[T])
}

func newChannel[T any](
	c Consumer[T],
	w dsched.Worker,
	onCancel func(*Channel[T]),
) *Channel[T] {
	return &Channel[T]{
		id: uuid.New(),

		consumer: c,
		worker:   w,

		queue: dqueue.NewMPSC[T](),

		onCancel: onCancel,
	}
}

// ID returns the unique identifier of the subscription,
// used in log output.
func (c *Channel[T]) ID() uuid.UUID {
	return c.id
}

// Request adds n to the outstanding demand and attempts a drain.
// A zero n is a no-op. A negative n returns a [NegativeRequestError]
// and does not modify demand.
func (c *Channel[T]) Request(n int64) error {
	if n < 0 {
		return NegativeRequestError{N: n}
	}
	if n == 0 {
		return nil
	}

	addDemand(&c.demand, n)
	c.drain()
	return nil
}

// Cancel marks the channel as no longer live.
// A drain in progress stops at its next check,
// no further values are accepted,
// and the channel is removed from its hub.
// Cancel is idempotent.
func (c *Channel[T]) Cancel() {
	if !c.cancelled.CompareAndSwap(false, true) {
		return
	}

	c.worker.Stop()

	if c.onCancel != nil {
		c.onCancel(c)
	}
}

// Cancelled reports whether [*Channel.Cancel] has been called,
// either by the consumer or due to a consumer failure.
func (c *Channel[T]) Cancelled() bool {
	return c.cancelled.Load()
}

// Demand returns the current outstanding demand.
// It is only a snapshot, intended for observation and tests.
func (c *Channel[T]) Demand() int64 {
	return c.demand.Load()
}

// Offer enqueues v for delivery and attempts a drain.
// Offers to a canceled channel are dropped.
func (c *Channel[T]) Offer(v T) {
	if c.cancelled.Load() {
		return
	}

	c.queue.Push(v)
	c.drain()
}

// schedule hands v to the channel's worker,
// which will call Offer on the worker's execution context.
func (c *Channel[T]) schedule(v T) {
	if c.cancelled.Load() {
		return
	}

	c.worker.Schedule(func() {
		c.Offer(v)
	})
}

// seed enqueues v without draining.
// It must only be called before the channel is visible to any other goroutine.
func (c *Channel[T]) seed(v T) {
	c.queue.Push(v)
}

// drain emits as many queued values as demand allows.
//
// Exactly one goroutine runs the emission loop at a time.
// A goroutine that loses the race to enter only increments wip,
// which forces the active drainer into another pass,
// so no queued value or demand update is missed.
func (c *Channel[T]) drain() {
	if c.wip.Add(1) != 1 {
		return
	}

	for {
		if c.cancelled.Load() {
			// Leave wip nonzero so no later drain can start.
			return
		}

		// Everything that incremented wip before this store
		// had already pushed its value or added its demand,
		// so the scan below covers it.
		c.wip.Store(1)

		requested := c.demand.Load()
		var emitted int64

		for requested != 0 {
			v, ok := c.queue.Pop()
			if !ok {
				break
			}

			if err := c.consumer.OnNext(v); err != nil {
				c.fail(err)
				return
			}

			if c.cancelled.Load() {
				return
			}

			requested--
			emitted++
		}

		if emitted != 0 {
			c.demand.Add(-emitted)
		}

		if c.wip.Add(-1) == 0 {
			return
		}
	}
}

// fail tears down the channel after a consumer failure
// and reports the failure to that consumer only.
func (c *Channel[T]) fail(err error) {
	c.Cancel()
	c.consumer.OnError(ConsumerError{Err: err})
}

// addDemand atomically adds n (which must be positive) to d,
// saturating at math.MaxInt64 instead of overflowing.
func addDemand(d *atomic.Int64, n int64) {
	for {
		cur := d.Load()
		if cur == math.MaxInt64 {
			return
		}

		next := cur + n
		if next < 0 {
			next = math.MaxInt64
		}

		if d.CompareAndSwap(cur, next) {
			return
		}
	}
}
