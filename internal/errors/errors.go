package errors

import "fmt"

type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Message string
	Details []ValidationDetail
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, details ...ValidationDetail) *ValidationError {
	return &ValidationError{
		Message: message,
		Details: details,
	}
}

func IsValidationError(err error) (*ValidationError, bool) {
	if ve, ok := err.(*ValidationError); ok {
		return ve, true
	}
	return nil, false
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

func IsNotFoundError(err error) (*NotFoundError, bool) {
	if nfe, ok := err.(*NotFoundError); ok {
		return nfe, true
	}
	return nil, false
}

// TransitionError reports a status change not permitted from the order's
// current state. It carries the offending pair for diagnostics.
type TransitionError struct {
	Current   string
	Requested string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition from %q to %q", e.Current, e.Requested)
}

func NewTransitionError(current, requested string) *TransitionError {
	return &TransitionError{Current: current, Requested: requested}
}

func IsTransitionError(err error) (*TransitionError, bool) {
	if te, ok := err.(*TransitionError); ok {
		return te, true
	}
	return nil, false
}

type PersistenceError struct {
	Message string
	Cause   error
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

func NewPersistenceError(message string, cause error) *PersistenceError {
	return &PersistenceError{
		Message: message,
		Cause:   cause,
	}
}

func IsPersistenceError(err error) (*PersistenceError, bool) {
	if pe, ok := err.(*PersistenceError); ok {
		return pe, true
	}
	return nil, false
}
