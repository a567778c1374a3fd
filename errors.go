package dproxy

import (
	"errors"
	"fmt"

	"github.com/gordian-engine/dproxy/internal/dhub"
)

// ErrUsage is matched (through errors.Is) by every error
// that reports a violation of the proxy's calling contract.
var ErrUsage = dhub.ErrUsage

var (
	// ErrAbsentValue is returned when publishing or seeding a nil value.
	ErrAbsentValue = fmt.Errorf("value must not be nil: %w", ErrUsage)

	// ErrNilConsumer is returned from Subscribe when the consumer is nil.
	ErrNilConsumer = fmt.Errorf("consumer must not be nil: %w", ErrUsage)

	// ErrNilScheduler is returned from Subscribe when the scheduler is nil.
	ErrNilScheduler = fmt.Errorf("scheduler must not be nil: %w", ErrUsage)
)

// NegativeRequestError is returned from [Subscription.Request]
// when the requested amount is negative.
type NegativeRequestError = dhub.NegativeRequestError

// ConsumerError is passed to [Consumer.OnError]
// when the consumer's OnNext returned an error.
// By then the subscription has already been canceled.
type ConsumerError = dhub.ConsumerError

// IsUsageError reports whether err indicates a contract violation by the caller.
func IsUsageError(err error) bool {
	return errors.Is(err, ErrUsage)
}
