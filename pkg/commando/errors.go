package commando

import (
	"errors"
)

// Outcome kinds. Every failure the engine recovers from carries one of these,
// either directly or through a *UserError.
var (
	ErrNotFound            = errors.New("not found")
	ErrAmbiguous           = errors.New("ambiguous")
	ErrValidationFailed    = errors.New("validation failed")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrRestrictionViolated = errors.New("restriction violated")
	ErrTimeout             = errors.New("prompt timed out")
	ErrCancelled           = errors.New("invocation cancelled")
	ErrRunFailed           = errors.New("run failed")

	// ErrArgumentMissing is returned by Argument.Resolve when no input was
	// supplied and the argument has no default.
	ErrArgumentMissing = errors.New("argument missing")
)

// Configuration errors. These abort registry construction.
var (
	ErrDuplicateArgumentName = errors.New("duplicate argument name")
	ErrDuplicateCommand      = errors.New("duplicate command name or alias")
	ErrRegistryFrozen        = errors.New("command registry is frozen")
)

// UserError is a failure with a message meant for the caller.
type UserError struct {
	Kind    error
	Message string
	Cause   error
}

// NewUserError returns a *UserError of the given kind.
func NewUserError(kind error, message string) *UserError {
	return &UserError{Kind: kind, Message: message}
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return e.Kind.Error() + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

// Is reports whether target is the error's kind.
func (e *UserError) Is(target error) bool {
	return target == e.Kind
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// asUserError converts err into a validation *UserError, keeping an existing
// kind when err already is one.
func asUserError(err error) *UserError {
	var uerr *UserError
	if errors.As(err, &uerr) {
		return uerr
	}
	return &UserError{Kind: ErrValidationFailed, Message: err.Error()}
}

// outcome maps an invocation result onto a short label for logs and metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAmbiguous), errors.Is(err, ErrValidationFailed):
		return "invalid"
	case errors.Is(err, ErrRestrictionViolated):
		return "restricted"
	case errors.Is(err, ErrPermissionDenied):
		return "denied"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrCancelled):
		return "cancelled"
	case errors.Is(err, ErrRunFailed):
		return "failed"
	default:
		return "error"
	}
}
