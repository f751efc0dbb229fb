package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrRead      = errors.New("dataset read failed")
	ErrWrite     = errors.New("dataset write failed")
	ErrMalformed = errors.New("malformed dataset")
)
