package engine

import (
	"errors"
	"fmt"
)

// Kind identifies a class of analytics failure. Handlers map kinds to HTTP
// statuses; the retry wrapper keys off ErrPredictorUnavailable only.
type Kind string

const (
	ErrInvalidInput           Kind = "invalid_input"
	ErrMissingScore           Kind = "missing_score"
	ErrPredictorUnavailable   Kind = "predictor_unavailable"
	ErrPredictorOutputInvalid Kind = "predictor_output_invalid"
	ErrInvalidConfidenceLevel Kind = "invalid_confidence_level"
	ErrInsufficientEntities   Kind = "insufficient_entities"
)

// Error carries a failure kind and a short user-facing message. Wrapped
// causes stay internal and never reach the response payload.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the caller may retry the operation.
func (e *Error) Retryable() bool {
	return e.Kind == ErrPredictorUnavailable
}

// NewError creates an engine error of the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewErrorf creates an engine error with formatting.
func NewErrorf(kind Kind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// WrapError creates an engine error wrapping an underlying cause.
func WrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, or "" when err is not an engine error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsRetryable reports whether err is a transient predictor failure.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable()
}
