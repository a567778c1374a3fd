// Package dproxy contains in-process value proxies
// with reactive-pull backpressure.
//
// A proxy broadcasts published values to any number of subscribers.
// Each subscriber:
//   - receives values strictly in publish order;
//   - receives no more values than it has requested through its [Subscription];
//   - receives its values on the [dsched.Scheduler] it chose at subscribe time,
//     never directly on the publisher's goroutine.
//
// [PublishProxy] forwards values only to subscribers that exist when a value is published.
// [CacheProxy] additionally remembers the latest value
// and delivers it first to every new subscriber.
//
// Publishing never blocks on subscriber progress.
// Values a subscriber has not yet requested are queued for that subscriber alone.
package dproxy
