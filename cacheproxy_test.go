package dproxy_test

import (
	"math"
	"testing"
	"time"

	"github.com/gordian-engine/dproxy"
	"github.com/gordian-engine/dproxy/dproxytest"
	"github.com/gordian-engine/dproxy/dsched"
	"github.com/gordian-engine/dproxy/internal/dtest"
	"github.com/stretchr/testify/require"
)

func TestCacheProxy_initialValue(t *testing.T) {
	t.Parallel()

	t.Run("created with value", func(t *testing.T) {
		t.Parallel()

		p, err := dproxy.NewCacheProxyWithValue(dtest.NewLogger(t), 1)
		require.NoError(t, err)
		require.True(t, p.HasValue())

		v, ok := p.Peek()
		require.True(t, ok)
		require.Equal(t, 1, v)

		c := dproxytest.NewRecordingConsumer[int](math.MaxInt64)
		_, err = p.Subscribe(c, dsched.Goroutine())
		require.NoError(t, err)

		c.WaitForCount(t, 1)
		c.RequireCountStays(t, 1, 20*time.Millisecond)
		require.Equal(t, []int{1}, c.Values())
	})

	t.Run("created without value", func(t *testing.T) {
		t.Parallel()

		p := dproxy.NewCacheProxy[int](dtest.NewLogger(t))
		require.False(t, p.HasValue())

		v, ok := p.Peek()
		require.False(t, ok)
		require.Zero(t, v)

		c := dproxytest.NewRecordingConsumer[int](math.MaxInt64)
		_, err := p.Subscribe(c, dsched.Goroutine())
		require.NoError(t, err)

		c.RequireCountStays(t, 0, 20*time.Millisecond)
		require.Empty(t, c.Errors())
	})

	t.Run("absent initial value", func(t *testing.T) {
		t.Parallel()

		_, err := dproxy.NewCacheProxyWithValue[*string](dtest.NewLogger(t), nil)
		require.ErrorIs(t, err, dproxy.ErrAbsentValue)
	})
}

func TestCacheProxy_publishUpdatesNextSubscriber(t *testing.T) {
	t.Parallel()

	p, err := dproxy.NewCacheProxyWithValue(dtest.NewLogger(t), 1)
	require.NoError(t, err)

	first := dproxytest.NewRecordingConsumer[int](1)
	_, err = p.Subscribe(first, dsched.Immediate())
	require.NoError(t, err)
	require.Equal(t, []int{1}, first.Values())

	require.NoError(t, p.Publish(2))
	v, ok := p.Peek()
	require.True(t, ok)
	require.Equal(t, 2, v)

	second := dproxytest.NewRecordingConsumer[int](1)
	_, err = p.Subscribe(second, dsched.Immediate())
	require.NoError(t, err)
	require.Equal(t, []int{2}, second.Values())

	// The first subscriber has 2 queued, waiting on demand.
	require.Equal(t, []int{1}, first.Values())
	require.NoError(t, first.RequestMore(1))
	require.Equal(t, []int{1, 2}, first.Values())
}

func TestCacheProxy_respectsBackpressure(t *testing.T) {
	t.Parallel()

	p, err := dproxy.NewCacheProxyWithValue(dtest.NewLogger(t), 1)
	require.NoError(t, err)

	c := dproxytest.NewRecordingConsumer[int](1)
	_, err = p.Subscribe(c, dsched.Goroutine())
	require.NoError(t, err)

	require.NoError(t, p.Publish(1))
	require.NoError(t, p.Publish(2))

	c.WaitForCount(t, 1)
	c.RequireCountStays(t, 1, 20*time.Millisecond)

	require.NoError(t, c.RequestMore(2))
	c.WaitForCount(t, 3)
	require.Equal(t, []int{1, 1, 2}, c.Values())
}

func TestCacheProxy_hasValueAfterPublish(t *testing.T) {
	t.Parallel()

	p := dproxy.NewCacheProxy[string](dtest.NewLogger(t))
	require.NoError(t, p.Publish("x"))

	require.True(t, p.HasValue())
	v, ok := p.Peek()
	require.True(t, ok)
	require.Equal(t, "x", v)

	// Peeking does not create or disturb subscriptions.
	require.Zero(t, p.Subscribers())
}

func TestCacheProxy_absentPublishKeepsCache(t *testing.T) {
	t.Parallel()

	x := "x"
	p, err := dproxy.NewCacheProxyWithValue(dtest.NewLogger(t), &x)
	require.NoError(t, err)

	require.ErrorIs(t, p.Publish(nil), dproxy.ErrAbsentValue)

	v, ok := p.Peek()
	require.True(t, ok)
	require.Same(t, &x, v)
}
