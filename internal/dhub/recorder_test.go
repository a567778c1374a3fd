package dhub_test

import "sync"

// recorder is a minimal [dhub.Consumer] that records what it receives.
type recorder[T any] struct {
	mu   sync.Mutex
	vals []T
	errs []error

	// Optional hook run before the value is recorded.
	// Returning an error simulates a consumer failure.
	beforeNext func(T) error
}

func (r *recorder[T]) OnNext(v T) error {
	if r.beforeNext != nil {
		if err := r.beforeNext(v); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.vals = append(r.vals, v)
	return nil
}

func (r *recorder[T]) OnError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.vals...)
}

func (r *recorder[T]) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.errs...)
}
