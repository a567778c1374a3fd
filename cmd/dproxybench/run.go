package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gordian-engine/dproxy"
	"github.com/gordian-engine/dproxy/dpubsub"
	"github.com/gordian-engine/dproxy/dsched"
	"golang.org/x/sync/errgroup"
)

// Result summarizes one benchmark run.
type Result struct {
	RunID uuid.UUID

	Published int

	// Values received by each subscriber, in subscription order.
	Received []int

	Elapsed time.Duration
}

// Log writes the result as a single structured log line.
func (r Result) Log(log *slog.Logger) {
	total := 0
	for _, n := range r.Received {
		total += n
	}

	rate := 0.0
	if r.Elapsed > 0 {
		rate = float64(total) / r.Elapsed.Seconds()
	}

	log.Info(
		"Benchmark complete",
		"run_id", r.RunID,
		"published", r.Published,
		"delivered", total,
		"elapsed", r.Elapsed,
		"deliveries_per_sec", rate,
	)
}

// Run publishes cfg.Publishers * cfg.ValuesPerPublisher values
// and waits until every subscriber has received all of them,
// or until the configured timeout elapses.
func Run(ctx context.Context, log *slog.Logger, cfg Config) (Result, error) {
	runID := uuid.New()
	log = log.With("run_id", runID)

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	poolCtx, cancelPool := context.WithCancel(context.Background())
	pool := dsched.NewPool(poolCtx, log, dsched.PoolConfig{Workers: cfg.PoolWorkers})
	defer pool.Wait()
	defer cancelPool()

	var p dproxy.Proxy[int]
	if cfg.Cache {
		p = dproxy.NewCacheProxy[int](log)
	} else {
		p = dproxy.NewPublishProxy[int](log)
	}

	total := cfg.Publishers * cfg.ValuesPerPublisher
	counts := make([]atomic.Int64, cfg.Subscribers)

	var eg errgroup.Group

	// Subscribe everyone before publishing,
	// so that every subscriber is expected to see every value.
	for i := range cfg.Subscribers {
		if cfg.SubscriberBuffer == 0 {
			_, err := p.Subscribe(dproxy.ConsumerFuncs[int]{
				Subscribe: func(s dproxy.Subscription) {
					_ = s.Request(math.MaxInt64)
				},
				Next: func(int) error {
					counts[i].Add(1)
					return nil
				},
			}, pool)
			if err != nil {
				return Result{}, fmt.Errorf("failed to subscribe: %w", err)
			}
			continue
		}

		c := dpubsub.NewChanConsumer[int](cfg.SubscriberBuffer)
		if _, err := p.Subscribe(c, pool); err != nil {
			return Result{}, fmt.Errorf("failed to subscribe: %w", err)
		}

		eg.Go(func() error {
			defer c.Cancel()
			for range total {
				if _, err := c.Recv(ctx); err != nil {
					return fmt.Errorf("subscriber %d failed to receive: %w", i, err)
				}
				counts[i].Add(1)
			}
			return nil
		})
	}

	start := time.Now()

	var pubs errgroup.Group
	for pi := range cfg.Publishers {
		pubs.Go(func() error {
			for v := range cfg.ValuesPerPublisher {
				if err := p.Publish(pi*cfg.ValuesPerPublisher + v); err != nil {
					return fmt.Errorf("publisher %d failed: %w", pi, err)
				}
			}
			return nil
		})
	}
	if err := pubs.Wait(); err != nil {
		return Result{}, err
	}

	log.Debug("All values published", "count", total, "elapsed", time.Since(start))

	if err := eg.Wait(); err != nil {
		return Result{}, err
	}

	// Unbounded subscribers have no receive loop; poll their counters.
	if cfg.SubscriberBuffer == 0 {
		if err := waitForCounts(ctx, counts, int64(total)); err != nil {
			return Result{}, err
		}
	}

	res := Result{
		RunID:     runID,
		Published: total,
		Received:  make([]int, len(counts)),
		Elapsed:   time.Since(start),
	}
	for i := range counts {
		res.Received[i] = int(counts[i].Load())
	}
	return res, nil
}

func waitForCounts(ctx context.Context, counts []atomic.Int64, want int64) error {
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()

	for {
		done := true
		for i := range counts {
			if counts[i].Load() < want {
				done = false
				break
			}
		}
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf(
				"context canceled while waiting for deliveries: %w", context.Cause(ctx),
			)
		case <-ticker.C:
			// Check again.
		}
	}
}
