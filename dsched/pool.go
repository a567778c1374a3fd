package dsched

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
)

// Pool is a fixed set of goroutines executing lane run loops.
// It satisfies both [Scheduler] and [Executor].
//
// Once the Pool's context is canceled, its goroutines exit
// and any lane whose run loop had not yet started
// stays idle permanently.
type Pool struct {
	log *slog.Logger

	ctx  context.Context
	work chan func()

	wg sync.WaitGroup
}

// PoolConfig is the configuration for [NewPool].
type PoolConfig struct {
	// Number of goroutines in the pool.
	// If zero, runtime.GOMAXPROCS(0) is used.
	Workers int

	// Capacity of the work channel shared by the pool goroutines.
	// When the channel is full, Execute falls back to
	// a dedicated goroutine rather than blocking the caller.
	// If zero, a reasonable default is used.
	QueueSize int
}

const defaultPoolQueueSize = 256

// validate panics if there are any illegal settings in the configuration.
func (c PoolConfig) validate() {
	var panicErrs error

	if c.Workers < 0 {
		panicErrs = errors.Join(
			panicErrs,
			fmt.Errorf("PoolConfig.Workers must not be negative (got %d)", c.Workers),
		)
	}

	if c.QueueSize < 0 {
		panicErrs = errors.Join(
			panicErrs,
			fmt.Errorf("PoolConfig.QueueSize must not be negative (got %d)", c.QueueSize),
		)
	}

	if panicErrs != nil {
		panic(panicErrs)
	}
}

// NewPool starts the pool goroutines.
// They stop when ctx is canceled; use [*Pool.Wait] to block until they have all returned.
func NewPool(ctx context.Context, log *slog.Logger, cfg PoolConfig) *Pool {
	cfg.validate()

	n := cfg.Workers
	if n == 0 {
		n = runtime.GOMAXPROCS(0)
	}

	qs := cfg.QueueSize
	if qs == 0 {
		qs = defaultPoolQueueSize
	}

	p := &Pool{
		log: log,

		ctx:  ctx,
		work: make(chan func(), qs),
	}

	p.wg.Add(n)
	for i := range n {
		go p.runWorker(i)
	}

	return p
}

func (p *Pool) runWorker(idx int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			p.log.Debug(
				"Pool worker stopping due to context cancellation",
				"worker", idx,
				"cause", context.Cause(p.ctx),
			)
			return

		case fn := <-p.work:
			fn()
		}
	}
}

// NewWorker returns a new ordered lane executing on p.
func (p *Pool) NewWorker() Worker {
	return newLane(p)
}

// Execute hands fn to one of the pool goroutines.
// Execute never blocks: if the work channel is full,
// fn runs on a new goroutine that is still tracked by [*Pool.Wait].
func (p *Pool) Execute(fn func()) {
	if p.ctx.Err() != nil {
		// Lanes submitted after shutdown never run.
		return
	}

	select {
	case p.work <- fn:
		// Okay.
	default:
		p.log.Debug("Pool work channel full; running task on overflow goroutine")

		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			fn()
		}()
	}
}

// Wait blocks until every pool goroutine,
// including overflow goroutines, has returned.
// The pool's context must be canceled for Wait to return.
func (p *Pool) Wait() {
	p.wg.Wait()
}
