package dhub

import (
	"errors"
	"fmt"
)

// ErrUsage is the parent of every error that indicates
// the caller violated the delivery contract.
// Match it with errors.Is.
var ErrUsage = errors.New("proxy usage error")

// NegativeRequestError is returned from [*Channel.Request]
// when the requested amount is negative.
type NegativeRequestError struct {
	N int64
}

func (e NegativeRequestError) Error() string {
	return fmt.Sprintf("requested amount must not be negative (got %d)", e.N)
}

func (e NegativeRequestError) Is(target error) bool {
	return target == ErrUsage
}

// ConsumerError is delivered to a consumer's OnError
// after its OnNext returned an error.
// The channel has already been canceled by the time it is delivered.
type ConsumerError struct {
	Err error
}

func (e ConsumerError) Error() string {
	return "consumer failed to process value: " + e.Err.Error()
}

func (e ConsumerError) Unwrap() error {
	return e.Err
}
