// Package dsched provides the execution contexts
// through which proxy subscribers receive their values.
//
// A [Scheduler] hands out [Worker] values.
// Each subscription owns exactly one Worker,
// and every task scheduled on a Worker runs in submission order,
// with no two tasks of the same Worker ever overlapping.
// This is what lets many publishers hand values to one subscriber concurrently
// without corrupting that subscriber's ordering.
//
// Workers are built as "lanes" on top of an [Executor],
// which only has to be capable of running a function at some later point.
// The lane adds the ordering guarantee itself,
// so executors such as [Goroutine] and [*Pool]
// are free to run unrelated lanes in parallel.
package dsched
