package dhub_test

import (
	"math"
	"testing"

	"github.com/gordian-engine/dproxy/dsched"
	"github.com/gordian-engine/dproxy/internal/dhub"
	"github.com/gordian-engine/dproxy/internal/dtest"
	"github.com/stretchr/testify/require"
)

func TestCachingHub_emptyCache(t *testing.T) {
	t.Parallel()

	h := dhub.NewCachingHub[int](dtest.NewLogger(t))
	require.False(t, h.HasValue())

	v, ok := h.Peek()
	require.False(t, ok)
	require.Zero(t, v)

	r := &recorder[int]{}
	ch := h.NewChannel(r, dsched.Immediate().NewWorker())
	h.Register(ch)
	require.NoError(t, ch.Request(math.MaxInt64))

	require.Empty(t, r.Values())
}

func TestCachingHub_seedsNewChannels(t *testing.T) {
	t.Parallel()

	h := dhub.NewCachingHub[int](dtest.NewLogger(t))
	h.Store(1)

	r1 := &recorder[int]{}
	ch1 := h.NewChannel(r1, dsched.Immediate().NewWorker())
	h.Register(ch1)

	// Nothing is emitted until there is demand.
	require.Empty(t, r1.Values())
	require.NoError(t, ch1.Request(1))
	require.Equal(t, []int{1}, r1.Values())

	h.Publish(2)
	v, ok := h.Peek()
	require.True(t, ok)
	require.Equal(t, 2, v)

	// The first channel has no demand left for 2.
	require.Equal(t, []int{1}, r1.Values())

	r2 := &recorder[int]{}
	ch2 := h.NewChannel(r2, dsched.Immediate().NewWorker())
	h.Register(ch2)
	require.NoError(t, ch2.Request(1))
	require.Equal(t, []int{2}, r2.Values())

	require.Equal(t, 2, h.Len())
}

func TestCachingHub_seedPrecedesLiveValues(t *testing.T) {
	t.Parallel()

	h := dhub.NewCachingHub[string](dtest.NewLogger(t))
	h.Publish("cached")

	r := &recorder[string]{}
	ch := h.NewChannel(r, dsched.Immediate().NewWorker())
	h.Register(ch)

	h.Publish("live")
	require.NoError(t, ch.Request(math.MaxInt64))

	require.Equal(t, []string{"cached", "live"}, r.Values())
}
