package notifier

import "errors"

// Sentinel kinds for delivery errors.
var (
	ErrDeliveryFailed = errors.New("notification delivery failed")
)
