package dproxy

import (
	"log/slog"

	"github.com/gordian-engine/dproxy/dsched"
	"github.com/gordian-engine/dproxy/internal/dhub"
)

// PublishProxy forwards each published value
// to the subscribers present at the time of publishing.
// A new subscriber sees nothing until the next Publish.
type PublishProxy[T any] struct {
	log *slog.Logger
	hub *dhub.Hub[T]
}

var _ Proxy[int] = (*PublishProxy[int])(nil)

// NewPublishProxy returns a proxy without subscribers.
func NewPublishProxy[T any](log *slog.Logger) *PublishProxy[T] {
	return &PublishProxy[T]{
		log: log,
		hub: dhub.NewHub[T](log),
	}
}

// NewPublishProxyWithValue is equivalent to [NewPublishProxy]
// followed immediately by Publish(v).
// Since there can be no subscribers yet,
// v is only validated and is never observed.
func NewPublishProxyWithValue[T any](log *slog.Logger, v T) (*PublishProxy[T], error) {
	p := NewPublishProxy[T](log)
	if err := p.Publish(v); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PublishProxy[T]) Publish(v T) error {
	if isAbsent(v) {
		return ErrAbsentValue
	}

	p.hub.Publish(v)
	return nil
}

func (p *PublishProxy[T]) Subscribe(c Consumer[T], s dsched.Scheduler) (Subscription, error) {
	return subscribe[T](p.log, p.hub, c, s)
}

// Subscribers returns the number of live subscriptions.
func (p *PublishProxy[T]) Subscribers() int {
	return p.hub.Len()
}
