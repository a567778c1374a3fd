package dpubsub

import (
	"context"
	"log/slog"

	"github.com/gordian-engine/dproxy"
)

// RunChannelToPublisher starts a background goroutine
// that reads values from ch and publishes them to pub.
//
// The returned done channel is closed when the goroutine stops,
// which will happen on context cancellation or
// if the given channel is closed.
//
// Values that pub rejects are logged and skipped.
func RunChannelToPublisher[T any](
	ctx context.Context,
	log *slog.Logger,
	ch <-chan T,
	pub dproxy.Publisher[T],
) (done <-chan struct{}) {
	doneCh := make(chan struct{})

	go runChannelToPublisher(ctx, log, ch, pub, doneCh)

	return doneCh
}

func runChannelToPublisher[T any](
	ctx context.Context,
	log *slog.Logger,
	ch <-chan T,
	pub dproxy.Publisher[T],
	done chan<- struct{},
) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			log.Debug(
				"Stopping channel pump due to context cancellation",
				"cause", context.Cause(ctx),
			)
			return

		case v, ok := <-ch:
			if !ok {
				log.Debug("Stopping channel pump due to closed input channel")
				return
			}

			if err := pub.Publish(v); err != nil {
				log.Warn("Dropping value rejected by publisher", "err", err)
			}
		}
	}
}
