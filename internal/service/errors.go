package service

import (
    "errors"
    "fmt"
)

// Kind classifies a service failure.  The HTTP layer maps each kind to
// one status code.
type Kind int

const (
    KindInternal       Kind = iota
    KindValidation          // malformed or out-of-range input
    KindAuthentication      // missing or wrong credentials
    KindPermission          // authenticated but not allowed
    KindNotFound            // referenced record absent
    KindConflict            // state forbids the operation
)

func (k Kind) String() string {
    switch k {
    case KindValidation:
        return "validation"
    case KindAuthentication:
        return "authentication"
    case KindPermission:
        return "permission"
    case KindNotFound:
        return "not_found"
    case KindConflict:
        return "conflict"
    }
    return "internal"
}

// Error is the error type returned by every service operation for
// failures the caller can act on.  Message is safe to show to clients.
type Error struct {
    Kind    Kind
    Message string
    Err     error
}

func (e *Error) Error() string {
    if e.Err != nil {
        return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
    }
    return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or KindInternal when err is not a
// service error.
func KindOf(err error) Kind {
    var se *Error
    if errors.As(err, &se) {
        return se.Kind
    }
    return KindInternal
}

func newErr(k Kind, format string, args ...any) *Error {
    return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error { return newErr(KindValidation, format, args...) }
func Unauthenticated(format string, args ...any) *Error {
    return newErr(KindAuthentication, format, args...)
}
func Forbidden(format string, args ...any) *Error { return newErr(KindPermission, format, args...) }
func NotFound(format string, args ...any) *Error  { return newErr(KindNotFound, format, args...) }
func Conflict(format string, args ...any) *Error  { return newErr(KindConflict, format, args...) }
