package dhub

import (
	"log/slog"
	"sync/atomic"

	"github.com/gordian-engine/dproxy/dsched"
)

// CachingHub is a [Hub] that remembers the most recently published value
// and seeds every new channel with it.
//
// The cache is advisory memory for future subscribers only:
// each Publish fans out its own value,
// regardless of what a concurrent Publish may have stored.
type CachingHub[T any] struct {
	hub *Hub[T]

	// Nil when no value has been published yet.
	cached atomic.Pointer[T]
}

// NewCachingHub returns a caching hub with an empty cache.
func NewCachingHub[T any](log *slog.Logger) *CachingHub[T] {
	return &CachingHub[T]{
		hub: NewHub[T](log),
	}
}

// Store sets the cached value without publishing it.
func (h *CachingHub[T]) Store(v T) {
	h.cached.Store(&v)
}

// Publish stores v in the cache and then fans it out.
func (h *CachingHub[T]) Publish(v T) {
	h.Store(v)
	h.hub.Publish(v)
}

// NewChannel creates a channel like [*Hub.NewChannel],
// with the current cached value (if any) already at the front of its queue.
// The first drain with positive demand emits the cached value,
// even if nothing is published afterward.
func (h *CachingHub[T]) NewChannel(c Consumer[T], w dsched.Worker) *Channel[T] {
	ch := h.hub.NewChannel(c, w)
	if p := h.cached.Load(); p != nil {
		ch.seed(*p)
	}
	return ch
}

// Register adds ch to the underlying hub.
func (h *CachingHub[T]) Register(ch *Channel[T]) {
	h.hub.Register(ch)
}

// HasValue reports whether a value has been cached.
func (h *CachingHub[T]) HasValue() bool {
	return h.cached.Load() != nil
}

// Peek returns the cached value and whether one was present.
func (h *CachingHub[T]) Peek() (T, bool) {
	p := h.cached.Load()
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// Len returns the number of registered channels.
func (h *CachingHub[T]) Len() int {
	return h.hub.Len()
}
