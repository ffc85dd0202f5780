// Package apperr is the error taxonomy shared by the core services and the gRPC boundary.
package apperr

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Domain tags ErrorInfo details attached to gRPC statuses.
const Domain = "event-polling-api"

// Code is a machine-readable error class.
type Code string

const (
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeForbidden       Code = "FORBIDDEN"
	CodeConflict        Code = "CONFLICT"
	CodeContention      Code = "CONTENTION"
	CodeUnauthenticated Code = "UNAUTHENTICATED"
	CodeInternal        Code = "INTERNAL"
)

// GRPCCode maps a code to its gRPC status code.
func (c Code) GRPCCode() codes.Code {
	switch c {
	case CodeInvalidInput:
		return codes.InvalidArgument
	case CodeNotFound:
		return codes.NotFound
	case CodeForbidden:
		return codes.PermissionDenied
	case CodeConflict:
		return codes.FailedPrecondition
	case CodeContention:
		return codes.Aborted
	case CodeUnauthenticated:
		return codes.Unauthenticated
	default:
		return codes.Internal
	}
}

type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func InvalidInput(message string) *Error { return New(CodeInvalidInput, message) }
func NotFound(message string) *Error     { return New(CodeNotFound, message) }
func Forbidden(message string) *Error    { return New(CodeForbidden, message) }
func Conflict(message string) *Error     { return New(CodeConflict, message) }

// Sentinels for errors.Is checks; only the code is compared.
var (
	ErrInvalidInput = New(CodeInvalidInput, "invalid input")
	ErrNotFound     = New(CodeNotFound, "not found")
	ErrForbidden    = New(CodeForbidden, "forbidden")
	ErrConflict     = New(CodeConflict, "conflict")
	ErrContention   = New(CodeContention, "contention")
	ErrInternal     = New(CodeInternal, "internal error")
)

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// IsContext reports whether err stems from the caller's context ending.
func IsContext(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ToStatus converts err into a gRPC status error. Internal causes are never
// exposed to the caller.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	if IsContext(err) {
		return status.FromContextError(err).Err()
	}
	var e *Error
	if !errors.As(err, &e) {
		e = New(CodeInternal, "internal error")
	}
	msg := e.Message
	if e.Code == CodeInternal {
		msg = "internal error"
	}
	st := status.New(e.Code.GRPCCode(), msg)
	detailed, derr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: string(e.Code),
		Domain: Domain,
	})
	if derr != nil {
		return st.Err()
	}
	return detailed.Err()
}
