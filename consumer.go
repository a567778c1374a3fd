package dproxy

// Consumer receives values from a proxy.
//
// OnSubscribe is called exactly once, synchronously from Subscribe,
// before the subscription can observe any published value.
// It is the consumer's opportunity to record the [Subscription]
// and to make its initial request.
//
// OnNext and OnError are called on the subscription's scheduler,
// or on whichever goroutine called Request when demand arrives after values.
// Calls to OnNext for one subscription never overlap.
type Consumer[T any] interface {
	OnSubscribe(Subscription)

	// OnNext receives a value.
	// Returning an error cancels the subscription;
	// the error is then reported to OnError wrapped in a [ConsumerError].
	// Other subscriptions on the same proxy are unaffected.
	OnNext(T) error

	OnError(error)
}

// Subscription is the consumer's handle on its flow of values.
type Subscription interface {
	// Request signals readiness for n more values.
	// Zero is a no-op and a negative n is a usage error.
	// Demand accumulates, saturating at math.MaxInt64.
	Request(n int64) error

	// Cancel stops delivery and detaches the subscription from its proxy.
	// A value being delivered concurrently may still arrive.
	Cancel()

	Cancelled() bool
}

// ConsumerFuncs adapts individual functions to the [Consumer] interface.
// Any nil field is treated as a no-op.
type ConsumerFuncs[T any] struct {
	Subscribe func(Subscription)
	Next      func(T) error
	Error     func(error)
}

func (f ConsumerFuncs[T]) OnSubscribe(s Subscription) {
	if f.Subscribe != nil {
		f.Subscribe(s)
	}
}

func (f ConsumerFuncs[T]) OnNext(v T) error {
	if f.Next != nil {
		return f.Next(v)
	}
	return nil
}

func (f ConsumerFuncs[T]) OnError(err error) {
	if f.Error != nil {
		f.Error(err)
	}
}
