package dhub_test

import (
	"math"
	"testing"

	"github.com/gordian-engine/dproxy/dsched"
	"github.com/gordian-engine/dproxy/internal/dhub"
	"github.com/gordian-engine/dproxy/internal/dtest"
	"github.com/stretchr/testify/require"
)

// hookWorker runs a hook before delegating each Schedule call.
type hookWorker struct {
	dsched.Worker
	beforeSchedule func()
}

func (w hookWorker) Schedule(task func()) {
	if w.beforeSchedule != nil {
		w.beforeSchedule()
	}
	w.Worker.Schedule(task)
}

func TestHub_Publish_fansOutInOrder(t *testing.T) {
	t.Parallel()

	h := dhub.NewHub[string](dtest.NewLogger(t))

	rs := make([]*recorder[string], 3)
	for i := range rs {
		rs[i] = &recorder[string]{}
		ch := h.NewChannel(rs[i], dsched.Immediate().NewWorker())
		h.Register(ch)
		require.NoError(t, ch.Request(math.MaxInt64))
	}
	require.Equal(t, 3, h.Len())

	h.Publish("a")
	h.Publish("b")
	h.Publish("a")

	for _, r := range rs {
		require.Equal(t, []string{"a", "b", "a"}, r.Values())
	}
}

func TestHub_Publish_noChannels(t *testing.T) {
	t.Parallel()

	h := dhub.NewHub[int](dtest.NewLogger(t))
	require.NotPanics(t, func() {
		h.Publish(1)
	})
	require.Zero(t, h.Len())
}

func TestHub_Publish_snapshotsChannelSetAtEntry(t *testing.T) {
	t.Parallel()

	h := dhub.NewHub[int](dtest.NewLogger(t))

	late := &recorder[int]{}
	lateCh := h.NewChannel(late, dsched.Immediate().NewWorker())
	require.NoError(t, lateCh.Request(math.MaxInt64))

	early := &recorder[int]{}
	registered := false
	earlyCh := h.NewChannel(early, hookWorker{
		Worker: dsched.Immediate().NewWorker(),
		beforeSchedule: func() {
			// Register another channel while a Publish is in flight.
			if !registered {
				registered = true
				h.Register(lateCh)
			}
		},
	})
	h.Register(earlyCh)
	require.NoError(t, earlyCh.Request(math.MaxInt64))

	h.Publish(1)
	require.Equal(t, 2, h.Len())

	// The channel registered mid-publish misses that value
	// but sees every later one.
	require.Equal(t, []int{1}, early.Values())
	require.Empty(t, late.Values())

	h.Publish(2)
	require.Equal(t, []int{1, 2}, early.Values())
	require.Equal(t, []int{2}, late.Values())
}

func TestHub_Register_cancelledChannel(t *testing.T) {
	t.Parallel()

	h := dhub.NewHub[int](dtest.NewLogger(t))

	r := &recorder[int]{}
	ch := h.NewChannel(r, dsched.Immediate().NewWorker())
	ch.Cancel()
	h.Register(ch)

	require.Zero(t, h.Len())

	h.Publish(1)
	require.NoError(t, ch.Request(1))
	require.Empty(t, r.Values())
}

func TestHub_channelRemovedOnCancel(t *testing.T) {
	t.Parallel()

	h := dhub.NewHub[int](dtest.NewLogger(t))

	chs := make([]*dhub.Channel[int], 4)
	for i := range chs {
		chs[i] = h.NewChannel(&recorder[int]{}, dsched.Immediate().NewWorker())
		h.Register(chs[i])
	}
	require.Equal(t, 4, h.Len())

	chs[1].Cancel()
	chs[3].Cancel()
	require.Equal(t, 2, h.Len())

	// Freed slots are reused.
	r := &recorder[int]{}
	ch := h.NewChannel(r, dsched.Immediate().NewWorker())
	h.Register(ch)
	require.Equal(t, 3, h.Len())

	require.NoError(t, ch.Request(1))
	h.Publish(7)
	require.Equal(t, []int{7}, r.Values())
}
