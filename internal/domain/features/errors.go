package features

import (
	"errors"
	"fmt"
)

// Sentinel kinds for feature pipeline errors. Match them with errors.Is.
var (
	// ErrValidation marks input that is missing a required field or carries
	// a value outside its mapping table.
	ErrValidation = errors.New("validation error")

	// ErrTransformation marks an internal computation failure.
	ErrTransformation = errors.New("transformation error")
)

// Error is a pipeline failure tagged with its kind, operation and the dotted
// path of the offending field.
type Error struct {
	Op    string
	Kind  error
	Field string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Validationf builds a validation error for field.
func Validationf(op, field, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrValidation, Field: field, Err: fmt.Errorf(format, args...)}
}

// Transformationf builds a transformation error.
func Transformationf(op, format string, args ...any) error {
	return &Error{Op: op, Kind: ErrTransformation, Err: fmt.Errorf(format, args...)}
}

// AsTransformation wraps err as a transformation error unless it already
// carries a kind.
func AsTransformation(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrTransformation) {
		return err
	}
	return &Error{Op: op, Kind: ErrTransformation, Err: err}
}

// KindOf names the kind of err for metrics and logs.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrTransformation):
		return "transformation"
	default:
		return "unknown"
	}
}
