package dhub

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChannelSet_withAndWithout(t *testing.T) {
	t.Parallel()

	a, b, c := new(Channel[int]), new(Channel[int]), new(Channel[int])

	s0 := emptyChannelSet[int]()
	s1 := s0.with(a).with(b).with(c)
	require.Zero(t, s0.Len())
	require.Equal(t, 3, s1.Len())
	require.Equal(t, []*Channel[int]{a, b, c}, collect(s1))

	// Removing from the middle leaves a hole that is reused.
	s2 := s1.without(b)
	require.Equal(t, []*Channel[int]{a, c}, collect(s2))
	require.Len(t, s2.slots, 3)

	d := new(Channel[int])
	s3 := s2.with(d)
	require.Equal(t, []*Channel[int]{a, d, c}, collect(s3))
	require.Len(t, s3.slots, 3)

	// Earlier snapshots are untouched.
	require.Equal(t, []*Channel[int]{a, b, c}, collect(s1))

	// Removing the tail trims trailing free slots.
	s4 := s3.without(d).without(c)
	require.Equal(t, []*Channel[int]{a}, collect(s4))
	require.Len(t, s4.slots, 1)

	// Removing an absent channel returns the same set.
	require.Same(t, s4, s4.without(b))

	s5 := s4.without(a)
	require.Zero(t, s5.Len())
	require.Empty(t, s5.slots)
}

func collect[T any](s *channelSet[T]) []*Channel[T] {
	var out []*Channel[T]
	s.each(func(ch *Channel[T]) {
		out = append(out, ch)
	})
	return out
}
