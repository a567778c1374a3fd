package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Config is the benchmark configuration, read from the environment.
type Config struct {
	Publishers         int `env:"DPROXY_PUBLISHERS" envDefault:"4"`
	ValuesPerPublisher int `env:"DPROXY_VALUES_PER_PUBLISHER" envDefault:"10000"`
	Subscribers        int `env:"DPROXY_SUBSCRIBERS" envDefault:"8"`

	// Size of each subscriber's receive buffer,
	// which is also its maximum outstanding demand.
	// Zero means unbounded demand.
	SubscriberBuffer int `env:"DPROXY_SUBSCRIBER_BUFFER" envDefault:"0"`

	// Use a caching proxy instead of a plain publish proxy.
	Cache bool `env:"DPROXY_CACHE" envDefault:"false"`

	// Pool goroutines delivering to subscribers.
	// Zero uses GOMAXPROCS.
	PoolWorkers int `env:"DPROXY_POOL_WORKERS" envDefault:"0"`

	Timeout time.Duration `env:"DPROXY_TIMEOUT" envDefault:"30s"`

	LogLevel slog.Level `env:"DPROXY_LOG_LEVEL" envDefault:"INFO"`
}

// Validate reports every illegal setting at once.
func (c Config) Validate() error {
	var errs error

	if c.Publishers <= 0 {
		errs = errors.Join(errs, fmt.Errorf(
			"DPROXY_PUBLISHERS must be positive (got %d)", c.Publishers,
		))
	}

	if c.ValuesPerPublisher <= 0 {
		errs = errors.Join(errs, fmt.Errorf(
			"DPROXY_VALUES_PER_PUBLISHER must be positive (got %d)", c.ValuesPerPublisher,
		))
	}

	if c.Subscribers <= 0 {
		errs = errors.Join(errs, fmt.Errorf(
			"DPROXY_SUBSCRIBERS must be positive (got %d)", c.Subscribers,
		))
	}

	if c.SubscriberBuffer < 0 {
		errs = errors.Join(errs, fmt.Errorf(
			"DPROXY_SUBSCRIBER_BUFFER must not be negative (got %d)", c.SubscriberBuffer,
		))
	}

	if c.PoolWorkers < 0 {
		errs = errors.Join(errs, fmt.Errorf(
			"DPROXY_POOL_WORKERS must not be negative (got %d)", c.PoolWorkers,
		))
	}

	if c.Timeout <= 0 {
		errs = errors.Join(errs, fmt.Errorf(
			"DPROXY_TIMEOUT must be positive (got %s)", c.Timeout,
		))
	}

	return errs
}
