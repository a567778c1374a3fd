package dhub

import (
	"github.com/bits-and-blooms/bitset"
)

// channelSet is an immutable snapshot of a hub's registered channels.
//
// Channels live in arena slots; occupied marks which slots are in use.
// Freed slots are reused by later registrations,
// so the slice stays proportional to the peak number of live channels
// rather than to the total number of subscriptions ever made.
//
// A channelSet is never modified after it is published through the hub's
// atomic pointer; with and without return modified copies.
type channelSet[T any] struct {
	slots    []*Channel[T]
	occupied *bitset.BitSet
}

func emptyChannelSet[T any]() *channelSet[T] {
	return &channelSet[T]{
		occupied: bitset.MustNew(0),
	}
}

// Len returns the number of registered channels.
func (s *channelSet[T]) Len() int {
	return int(s.occupied.Count())
}

// with returns a copy of s with ch added in the lowest free slot.
func (s *channelSet[T]) with(ch *Channel[T]) *channelSet[T] {
	occupied := s.occupied.Clone()

	idx, ok := occupied.NextClear(0)
	if !ok || idx >= uint(len(s.slots)) {
		idx = uint(len(s.slots))
	}

	n := len(s.slots)
	if int(idx) == n {
		n++
	}

	slots := make([]*Channel[T], n)
	_ = copy(slots, s.slots)

	slots[idx] = ch
	occupied.Set(idx)

	return &channelSet[T]{
		slots:    slots,
		occupied: occupied,
	}
}

// without returns a copy of s with ch removed,
// or s itself if ch is not present.
func (s *channelSet[T]) without(ch *Channel[T]) *channelSet[T] {
	idx := -1
	for i, ok := s.occupied.NextSet(0); ok; i, ok = s.occupied.NextSet(i + 1) {
		if s.slots[i] == ch {
			idx = int(i)
			break
		}
	}
	if idx < 0 {
		return s
	}

	occupied := s.occupied.Clone()
	occupied.Clear(uint(idx))

	// Trim trailing free slots.
	n := len(s.slots)
	for n > 0 && !occupied.Test(uint(n-1)) {
		n--
	}

	slots := make([]*Channel[T], n)
	_ = copy(slots, s.slots[:n])
	if idx < n {
		slots[idx] = nil
	}

	return &channelSet[T]{
		slots:    slots,
		occupied: occupied,
	}
}

// each calls fn for every registered channel, in slot order.
func (s *channelSet[T]) each(fn func(*Channel[T])) {
	for i, ok := s.occupied.NextSet(0); ok; i, ok = s.occupied.NextSet(i + 1) {
		fn(s.slots[i])
	}
}
