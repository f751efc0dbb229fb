package loadtest

import "errors"

var (
	// ErrUnhealthy is returned when the service does not answer its health check.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrVerification is returned when at least one response broke an ordering or filtering rule.
	ErrVerification = errors.New("response verification failed")
)
