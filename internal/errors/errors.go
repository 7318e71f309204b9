package errors

import (
	"errors"
	"fmt"
	"maps"
)

// Error is the structured error returned across package boundaries
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

// Unwrap returns the cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code
func (e *Error) Is(target error) bool {
	var t *Error
	return errors.As(target, &t) && t.Code == e.Code
}

// WithMeta attaches a key to the error, typically an id of the record involved
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any, 1)
	}
	e.Meta[key] = value
	return e
}

// New creates an error with the given code
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with the given code and a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// wrap builds a wrapping error. A zero code keeps the cause's code, or
// CodeInternal when the cause is not an *Error.
func wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	out := &Error{Code: code, Message: message, Cause: err}

	var inner *Error
	if !errors.As(err, &inner) {
		if out.Code == "" {
			out.Code = CodeInternal
		}
		return out
	}
	if out.Code == "" {
		out.Code = inner.Code
		out.Meta = inner.Meta
		return out
	}
	if inner.Meta != nil {
		out.Meta = maps.Clone(inner.Meta)
	}
	return out
}

// Wrap adds context to err and keeps its code. Plain errors become CodeInternal.
func Wrap(err error, message string) *Error {
	return wrap(err, "", message)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return wrap(err, "", fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err under a new code. Metadata of the cause is copied.
func WrapWithCode(err error, code Code, message string) *Error {
	return wrap(err, code, message)
}

// WrapWithCodef is WrapWithCode with a formatted message
func WrapWithCodef(err error, code Code, format string, args ...any) *Error {
	return wrap(err, code, fmt.Sprintf(format, args...))
}

// NotFound reports a missing character or child record
func NotFound(message string) *Error { return New(CodeNotFound, message) }

// NotFoundf formats a NotFound error
func NotFoundf(format string, args ...any) *Error { return Newf(CodeNotFound, format, args...) }

// InvalidArgument reports bad caller input
func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }

// InvalidArgumentf formats an InvalidArgument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExists reports a duplicate id or name
func AlreadyExists(message string) *Error { return New(CodeAlreadyExists, message) }

// AlreadyExistsf formats an AlreadyExists error
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// FailedPrecondition reports an operation the current state does not allow
func FailedPrecondition(message string) *Error { return New(CodeFailedPrecondition, message) }

// FailedPreconditionf formats a FailedPrecondition error
func FailedPreconditionf(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// Abortedf reports a transaction lost to a concurrent write
func Abortedf(format string, args ...any) *Error { return Newf(CodeAborted, format, args...) }

// DataLoss reports a stored record that can no longer be decoded
func DataLoss(message string) *Error { return New(CodeDataLoss, message) }

// DataLossf formats a DataLoss error
func DataLossf(format string, args ...any) *Error { return Newf(CodeDataLoss, format, args...) }

// Internal reports a store or programming failure
func Internal(message string) *Error { return New(CodeInternal, message) }

// Internalf formats an Internal error
func Internalf(format string, args ...any) *Error { return Newf(CodeInternal, format, args...) }

// Unavailable reports an unreachable collaborator such as the SRD API
func Unavailable(message string) *Error { return New(CodeUnavailable, message) }
