package dproxy

import (
	"log/slog"

	"github.com/gordian-engine/dproxy/dsched"
	"github.com/gordian-engine/dproxy/internal/dhub"
)

// Publisher accepts values for broadcast.
type Publisher[T any] interface {
	// Publish broadcasts v to every current subscriber.
	// It returns [ErrAbsentValue] if v is nil.
	Publish(v T) error
}

// Proxy is the capability shared by [*PublishProxy] and [*CacheProxy].
type Proxy[T any] interface {
	Publisher[T]

	// Subscribe attaches c to the proxy,
	// delivering its values on a new worker from s.
	Subscribe(c Consumer[T], s dsched.Scheduler) (Subscription, error)
}

// channelRegistry is the part of a hub that subscribe needs.
// Both dhub.Hub and dhub.CachingHub satisfy it.
type channelRegistry[T any] interface {
	NewChannel(dhub.Consumer[T], dsched.Worker) *dhub.Channel[T]
	Register(*dhub.Channel[T])
}

// subscribe is the subscription flow common to every proxy variant.
func subscribe[T any](
	log *slog.Logger,
	r channelRegistry[T],
	c Consumer[T],
	s dsched.Scheduler,
) (Subscription, error) {
	if isAbsent(c) {
		return nil, ErrNilConsumer
	}
	if isAbsent(s) {
		return nil, ErrNilScheduler
	}

	ch := r.NewChannel(c, s.NewWorker())

	// The consumer may request or even cancel here.
	// Registration happens afterward so that a consumer
	// canceling inside OnSubscribe never joins the fan-out.
	c.OnSubscribe(ch)

	r.Register(ch)

	if ch.Cancelled() {
		log.Debug("Subscription canceled during subscribe", "sub_id", ch.ID())
	}

	return ch, nil
}
