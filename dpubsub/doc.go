// Package dpubsub bridges dproxy subscriptions
// and plain Go concurrency primitives.
//
// [RunChannelToPublisher] feeds a Go channel into any [dproxy.Publisher].
// [ChanConsumer] exposes a subscription as a bounded, pull-style receive method.
// [StreamConsumer] exposes a subscription as a [Stream],
// a linked list that any number of goroutines can follow in a select loop.
package dpubsub
