package dqueue

import "sync/atomic"

// MPSC is an unbounded, lock-free FIFO queue
// that permits any number of concurrent producers
// but only a single consumer at a time.
//
// The consumer side is not synchronized at all;
// callers must guarantee that Pop is never called concurrently with itself.
// In this module, that guarantee comes from the drain guard
// of whichever type owns the queue.
//
// The zero value is not usable; use [NewMPSC].
type MPSC[T any] struct {
	// Producers swap themselves in as the head.
	head atomic.Pointer[node[T]]

	// Only touched by the consumer.
	// Always points at a node whose value has already been consumed
	// (initially the stub node).
	tail *node[T]
}

type node[T any] struct {
	next atomic.Pointer[node[T]]
	val  T
}

// NewMPSC returns an empty queue.
func NewMPSC[T any]() *MPSC[T] {
	stub := new(node[T])
	q := &MPSC[T]{tail: stub}
	q.head.Store(stub)
	return q
}

// Push appends v to the queue.
// It is safe to call concurrently from any number of goroutines.
func (q *MPSC[T]) Push(v T) {
	n := &node[T]{val: v}
	prev := q.head.Swap(n)

	// Between the swap and this store, the consumer may observe
	// the queue as empty even though n is logically enqueued.
	// Owners must trigger their consumer after Push returns
	// so that the value is picked up on a later pass.
	prev.next.Store(n)
}

// Pop removes and returns the oldest value in the queue.
// If the queue is empty, or if the next producer has not yet
// finished linking its node, Pop reports false.
func (q *MPSC[T]) Pop() (T, bool) {
	next := q.tail.next.Load()
	if next == nil {
		var zero T
		return zero, false
	}

	q.tail = next
	v := next.val

	// Release the reference so the consumed value can be collected.
	var zero T
	next.val = zero

	return v, true
}

// Empty reports whether Pop would currently return false.
// Like Pop, it must only be called by the consumer.
func (q *MPSC[T]) Empty() bool {
	return q.tail.next.Load() == nil
}
