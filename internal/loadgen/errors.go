package loadgen

import "errors"

// Sentinel errors.
var (
	ErrInvalidConfig = errors.New("invalid load config")
	ErrUnhealthy     = errors.New("service unhealthy")
	ErrTooFewUsers   = errors.New("need at least two users")
	ErrUndelivered   = errors.New("accepted actions were not delivered")
)
