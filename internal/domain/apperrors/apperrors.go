// Package apperrors defines the failure kinds the application reports.
// Every persistence or domain failure is converted to an *Error at the
// usecase/repository boundary; nothing leaks raw driver errors upward.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindNotFound: unknown website, session, user or page. Returned to the
	// caller, never retried.
	KindNotFound Kind = iota
	// KindConflict: duplicate identity or duplicate session start.
	KindConflict
	// KindValidation: bad input, e.g. a lead score outside [0,100].
	KindValidation
	// KindReferential: a component received an ID it cannot resolve. This is
	// a caller ordering bug, not user input.
	KindReferential
	// KindUnavailable: connection pool or store failure. Transient; retries,
	// if any, belong to the caller.
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindReferential:
		return "referential"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Referential(format string, args ...interface{}) *Error {
	return &Error{Kind: KindReferential, Message: fmt.Sprintf(format, args...)}
}

// Unavailable wraps a store-level failure.
func Unavailable(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnavailable, Message: fmt.Sprintf(format, args...), Err: err}
}

// Wrap attaches a cause to a kind without losing it for errors.Is/As.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return 0, false
}

func IsNotFound(err error) bool    { return hasKind(err, KindNotFound) }
func IsConflict(err error) bool    { return hasKind(err, KindConflict) }
func IsValidation(err error) bool  { return hasKind(err, KindValidation) }
func IsReferential(err error) bool { return hasKind(err, KindReferential) }
func IsUnavailable(err error) bool { return hasKind(err, KindUnavailable) }

func hasKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
