package dsched

// Scheduler creates Workers.
// A single Scheduler is typically shared by many subscriptions.
type Scheduler interface {
	NewWorker() Worker
}

// Worker is a sequential task lane.
//
// Tasks passed to Schedule run in the order they were scheduled,
// and a task never starts before the previous task on the same Worker returns.
// Schedule must not block on the progress of earlier tasks.
type Worker interface {
	Schedule(task func())

	// Stop discards any tasks that have not yet started
	// and causes future calls to Schedule to be ignored.
	// Stop is idempotent.
	Stop()
}

// Executor runs functions at some later point,
// possibly on another goroutine.
// An Executor makes no ordering guarantees on its own.
type Executor interface {
	Execute(fn func())
}

// ExecutorFunc adapts a plain function to the [Executor] interface.
type ExecutorFunc func(fn func())

func (f ExecutorFunc) Execute(fn func()) {
	f(fn)
}

// FromExecutor returns a Scheduler whose Workers
// are ordered lanes running on e.
func FromExecutor(e Executor) Scheduler {
	return executorScheduler{e: e}
}

type executorScheduler struct {
	e Executor
}

func (s executorScheduler) NewWorker() Worker {
	return newLane(s.e)
}

// Immediate returns a Scheduler that runs tasks on the calling goroutine.
//
// If a Worker from the Immediate scheduler is already running a task
// when another goroutine (or the running task itself) schedules a new one,
// the new task is queued and run by the goroutine already inside the lane,
// so ordering and non-overlap still hold.
func Immediate() Scheduler {
	return FromExecutor(ExecutorFunc(func(fn func()) { fn() }))
}

// Goroutine returns a Scheduler that starts a new goroutine
// whenever an idle Worker receives a task.
// The goroutine runs every task queued on that Worker and then exits.
func Goroutine() Scheduler {
	return FromExecutor(ExecutorFunc(func(fn func()) { go fn() }))
}
