// Package errors is the one import for error handling: stdlib matching plus
// pkg/errors wrapping so failures logged at the edge carry a stack trace.
package errors

import (
	stderrors "errors"

	pkgerrors "github.com/pkg/errors"
)

// New returns a plain sentinel error without a stack.
func New(text string) error {
	return stderrors.New(text)
}

// Errorf formats a new error with a stack trace.
func Errorf(format string, args ...any) error {
	return pkgerrors.Errorf(format, args...)
}

// Wrap annotates err with message and a stack trace. Wrap(nil, ...) is nil.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// WithStack records a stack trace without changing the message.
func WithStack(err error) error {
	return pkgerrors.WithStack(err)
}

// Join combines errs; Is and As match any member.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Find returns the first error in err's tree assignable to T.
// T may be a concrete error type or an interface such as an application error contract.
func Find[T any](err error) (T, bool) {
	var target T
	if err == nil {
		return target, false
	}
	ok := stderrors.As(err, &target)

	return target, ok
}

// Cause returns the innermost error that is not a pkg/errors wrapper.
//
//nolint:wrapcheck
func Cause(err error) error {
	return pkgerrors.Cause(err)
}
