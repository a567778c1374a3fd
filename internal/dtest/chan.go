package dtest

import (
	"testing"
	"time"
)

// ScheduledOperationTimeout is how long the "Soon" helpers wait
// before failing the test.
//
// Work in this module is handed off to schedulers,
// so tests frequently need to wait a short while for delivery.
const ScheduledOperationTimeout = 2 * time.Second

// ReceiveSoon returns the next value from ch,
// failing the test if no value arrives within [ScheduledOperationTimeout].
func ReceiveSoon[T any](t *testing.T, ch <-chan T) T {
	t.Helper()

	timer := time.NewTimer(ScheduledOperationTimeout)
	defer timer.Stop()

	select {
	case v := <-ch:
		return v
	case <-timer.C:
		t.Fatalf("did not receive value within %s", ScheduledOperationTimeout)
	}

	panic("unreachable")
}

// SendSoon sends v on ch,
// failing the test if the send does not complete within [ScheduledOperationTimeout].
func SendSoon[T any](t *testing.T, ch chan<- T, v T) {
	t.Helper()

	timer := time.NewTimer(ScheduledOperationTimeout)
	defer timer.Stop()

	select {
	case ch <- v:
		// Okay.
	case <-timer.C:
		t.Fatalf("could not send value within %s", ScheduledOperationTimeout)
	}
}

// IsSending asserts that a receive on ch would succeed immediately,
// and returns the received value.
func IsSending[T any](t *testing.T, ch <-chan T) T {
	t.Helper()

	select {
	case v := <-ch:
		return v
	default:
		t.Fatal("channel should have been ready to receive")
	}

	panic("unreachable")
}

// NotSending asserts that a receive on ch would block.
func NotSending[T any](t *testing.T, ch <-chan T) {
	t.Helper()

	select {
	case <-ch:
		t.Fatal("channel should not have been ready to receive")
	default:
		// Okay.
	}
}
