package evaluation

import "errors"

// Sentinel errors for metric computation.
var (
	ErrUndefinedMetric = errors.New("metric undefined")
	ErrLengthMismatch  = errors.New("length mismatch")
	ErrEmpty           = errors.New("no samples")
)
