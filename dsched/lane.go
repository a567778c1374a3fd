package dsched

import (
	"sync/atomic"

	"github.com/gordian-engine/dproxy/internal/dqueue"
)

// lane is the [Worker] implementation shared by all schedulers in this package.
//
// Ordering comes from the queue, and mutual exclusion comes from wip:
// only the goroutine that moves wip from 0 to 1
// submits the run loop to the executor.
type lane struct {
	e     Executor
	tasks *dqueue.MPSC[func()]

	wip     atomic.Int32
	stopped atomic.Bool
}

func newLane(e Executor) *lane {
	return &lane{
		e:     e,
		tasks: dqueue.NewMPSC[func()](),
	}
}

func (l *lane) Schedule(task func()) {
	if l.stopped.Load() {
		return
	}

	l.tasks.Push(task)

	if l.wip.Add(1) == 1 {
		l.e.Execute(l.run)
	}
}

func (l *lane) Stop() {
	l.stopped.Store(true)
}

func (l *lane) run() {
	for {
		// Collapse any increments since the last pass;
		// the scan below observes every task pushed before them.
		l.wip.Store(1)

		for {
			// Once stopped, wip is intentionally left nonzero
			// so that no further run loop is ever submitted.
			if l.stopped.Load() {
				return
			}

			task, ok := l.tasks.Pop()
			if !ok {
				break
			}
			task()
		}

		if l.wip.Add(-1) == 0 {
			return
		}
	}
}
