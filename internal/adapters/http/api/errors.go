package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/talentmatch/internal/domain/features"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrSchema     = errors.New("request does not match schema")
	ErrBulkLimit  = errors.New("bulk limit exceeded")
	ErrMethod     = errors.New("method not allowed")
)

// Error codes written in error bodies.
const (
	codeBadRequest     = "bad_request"
	codeValidation     = "validation_error"
	codeTransformation = "transformation_error"
	codeBulkLimit      = "bulk_limit_exceeded"
	codeMethod         = "method_not_allowed"
	codeCanceled       = "request_canceled"
	codeInternal       = "internal_error"
)

// opError tags an error with the handler operation and an optional kind.
type opError struct {
	op   string
	kind error
	err  error
}

func (e *opError) Error() string {
	switch {
	case e.kind != nil && e.err != nil:
		return e.op + ": " + e.kind.Error() + ": " + e.err.Error()
	case e.kind != nil:
		return e.op + ": " + e.kind.Error()
	default:
		return e.op + ": " + e.err.Error()
	}
}

func (e *opError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.kind != nil {
		out = append(out, e.kind)
	}
	if e.err != nil {
		out = append(out, e.err)
	}
	return out
}

// Wrap tags err with op. It returns nil for a nil err.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &opError{op: op, err: err}
}

// WrapKind tags err with op and kind.
func WrapKind(op string, kind, err error) error {
	return &opError{op: op, kind: kind, err: err}
}

// NewKind returns an error of kind tagged with op.
func NewKind(op string, kind error) error {
	return &opError{op: op, kind: kind}
}

// classify maps an error to its HTTP status and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMethod):
		return http.StatusMethodNotAllowed, codeMethod
	case errors.Is(err, ErrBulkLimit):
		return http.StatusBadRequest, codeBulkLimit
	case errors.Is(err, ErrSchema), errors.Is(err, features.ErrValidation):
		return http.StatusBadRequest, codeValidation
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, features.ErrTransformation):
		return http.StatusUnprocessableEntity, codeTransformation
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, codeCanceled
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
