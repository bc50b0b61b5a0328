package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNotFound       ErrorKind = "not_found"
	KindForbidden      ErrorKind = "forbidden"
	KindInvalidState   ErrorKind = "invalid_state"
	KindPartialFailure ErrorKind = "partial_failure"
	KindInvalid        ErrorKind = "invalid"
	KindInternal       ErrorKind = "internal"
)

// Error is a classified failure surfaced to callers. Sentinels of this type are
// compared with errors.Is; KindOf classifies anything wrapping one.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf wraps a sentinel with extra context while keeping it matchable.
func Errorf(sentinel *Error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

var (
	ErrForbidden = NewError(KindForbidden, "admin role required")
	ErrInvalid   = NewError(KindInvalid, "invalid input")
)
