package dhub

import (
	"log/slog"
	"sync/atomic"

	"github.com/gordian-engine/dproxy/dsched"
)

// Hub fans published values out to every registered [Channel].
//
// The channel set is copy-on-write:
// Publish reads a snapshot without blocking,
// and registration or removal swaps in a modified copy with compare-and-swap.
// Publish delivers to exactly the channels in the snapshot taken at call entry;
// channels registered during a Publish call do not receive that value.
type Hub[T any] struct {
	log *slog.Logger

	set atomic.Pointer[channelSet[T]]
}

// NewHub returns a hub without any channels.
func NewHub[T any](log *slog.Logger) *Hub[T] {
	h := &Hub[T]{log: log}
	h.set.Store(emptyChannelSet[T]())
	return h
}

// NewChannel creates a channel delivering to c through w.
// The channel does not receive published values
// until it is passed to [*Hub.Register].
func (h *Hub[T]) NewChannel(c Consumer[T], w dsched.Worker) *Channel[T] {
	return newChannel(c, w, h.remove)
}

// Register adds ch to the hub.
// If ch was canceled before or during registration, it is removed again,
// so a canceled channel never stays in the set.
func (h *Hub[T]) Register(ch *Channel[T]) {
	if ch.Cancelled() {
		return
	}

	for {
		cur := h.set.Load()
		if h.set.CompareAndSwap(cur, cur.with(ch)) {
			break
		}
	}

	h.log.Debug("Registered subscription", "sub_id", ch.ID())

	// A Cancel that ran before the swap above found nothing to remove.
	if ch.Cancelled() {
		h.remove(ch)
	}
}

func (h *Hub[T]) remove(ch *Channel[T]) {
	for {
		cur := h.set.Load()
		next := cur.without(ch)
		if next == cur {
			return
		}
		if h.set.CompareAndSwap(cur, next) {
			h.log.Debug("Removed subscription", "sub_id", ch.ID())
			return
		}
	}
}

// Publish schedules v for delivery on every channel
// registered at the moment Publish is called.
// It never waits for consumers.
func (h *Hub[T]) Publish(v T) {
	h.set.Load().each(func(ch *Channel[T]) {
		ch.schedule(v)
	})
}

// Len returns the number of registered channels.
func (h *Hub[T]) Len() int {
	return h.set.Load().Len()
}
