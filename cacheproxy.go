package dproxy

import (
	"log/slog"

	"github.com/gordian-engine/dproxy/dsched"
	"github.com/gordian-engine/dproxy/internal/dhub"
)

// CacheProxy is a proxy that remembers the most recently published value.
// Every new subscriber receives that value first,
// as soon as it has requested at least one value.
type CacheProxy[T any] struct {
	log *slog.Logger
	hub *dhub.CachingHub[T]
}

var _ Proxy[int] = (*CacheProxy[int])(nil)

// NewCacheProxy returns a proxy with an empty cache.
func NewCacheProxy[T any](log *slog.Logger) *CacheProxy[T] {
	return &CacheProxy[T]{
		log: log,
		hub: dhub.NewCachingHub[T](log),
	}
}

// NewCacheProxyWithValue returns a proxy whose cache already holds v.
func NewCacheProxyWithValue[T any](log *slog.Logger, v T) (*CacheProxy[T], error) {
	if isAbsent(v) {
		return nil, ErrAbsentValue
	}

	p := NewCacheProxy[T](log)
	p.hub.Store(v)
	return p, nil
}

// Publish stores v as the cached value and broadcasts it.
// When two Publish calls race, the cache ends up holding one of the two values.
func (p *CacheProxy[T]) Publish(v T) error {
	if isAbsent(v) {
		return ErrAbsentValue
	}

	p.hub.Publish(v)
	return nil
}

func (p *CacheProxy[T]) Subscribe(c Consumer[T], s dsched.Scheduler) (Subscription, error) {
	return subscribe[T](p.log, p.hub, c, s)
}

// HasValue reports whether the proxy holds a cached value.
func (p *CacheProxy[T]) HasValue() bool {
	return p.hub.HasValue()
}

// Peek returns the cached value, if any,
// without affecting any subscription.
func (p *CacheProxy[T]) Peek() (T, bool) {
	return p.hub.Peek()
}

// Subscribers returns the number of live subscriptions.
func (p *CacheProxy[T]) Subscribers() int {
	return p.hub.Len()
}
