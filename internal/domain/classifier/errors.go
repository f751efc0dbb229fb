package classifier

import "errors"

// Sentinel kinds for classifier construction. Adapters that load models
// wrap these as configuration errors.
var (
	ErrUnknownKind  = errors.New("unknown model type")
	ErrInvalidModel = errors.New("invalid model")
	ErrInvalidRule  = errors.New("invalid rule")
)
