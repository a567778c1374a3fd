package dpubsub

import (
	"math"

	"github.com/gordian-engine/dproxy"
)

// Stream is a linked list of event-driven values.
// The list has a single writer and many readers.
// Readers can each consume the list at their own pace.
//
// If readers do not actively consume the list,
// the node they observe will never be garbage collected,
// which is a memory leak.
type Stream[T any] struct {
	Ready chan struct{}
	Next  *Stream[T]
	Val   T
}

// NewStream returns an initialized, unpublished stream node.
func NewStream[T any]() *Stream[T] {
	return &Stream[T]{
		Ready: make(chan struct{}),
	}
}

// Publish assigns s's value and initializes s.Next.
// Then s.Ready is closed, notifying any observers that
// s.Val can now be safely read.
//
// If Publish is called twice for the same s, Publish panics.
func (s *Stream[T]) Publish(t T) {
	s.Val = t
	s.Next = NewStream[T]()
	close(s.Ready)
}

// StreamConsumer is a [dproxy.Consumer] with unbounded demand
// that appends every delivered value to a [Stream].
//
// The proxy already queues values per subscriber,
// so the stream is only useful when several goroutines
// need to observe the same subscription independently.
type StreamConsumer[T any] struct {
	// Only touched from OnNext, which never runs concurrently with itself.
	tail *Stream[T]

	sub dproxy.Subscription
}

// NewStreamConsumer returns the consumer
// and the head of the stream it will write to.
func NewStreamConsumer[T any]() (*StreamConsumer[T], *Stream[T]) {
	head := NewStream[T]()
	return &StreamConsumer[T]{tail: head}, head
}

func (c *StreamConsumer[T]) OnSubscribe(s dproxy.Subscription) {
	c.sub = s
	_ = s.Request(math.MaxInt64)
}

func (c *StreamConsumer[T]) OnNext(v T) error {
	c.tail.Publish(v)
	c.tail = c.tail.Next
	return nil
}

// OnError is a no-op: OnNext never fails,
// so the proxy never reports an error to a StreamConsumer.
func (c *StreamConsumer[T]) OnError(error) {}

// Cancel stops appending to the stream.
// Readers can still consume every value already appended.
func (c *StreamConsumer[T]) Cancel() {
	if c.sub != nil {
		c.sub.Cancel()
	}
}
