package errors

import (
	"errors"
)

// As is errors.As narrowed to *Error
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is forwards to the standard library
func Is(err, target error) bool {
	return errors.Is(err, target)
}

func find(err error) (*Error, bool) {
	var e *Error
	if err == nil || !errors.As(err, &e) {
		return nil, false
	}
	return e, true
}

// GetCode returns the code of the outermost *Error in err's chain. Nil is
// CodeOK and any other error is CodeInternal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	if e, ok := find(err); ok {
		return e.Code
	}
	return CodeInternal
}

// GetMeta returns the metadata of the outermost *Error, if any
func GetMeta(err error) map[string]any {
	if e, ok := find(err); ok {
		return e.Meta
	}
	return nil
}

// GetMessage returns the outermost message without code or cause
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := find(err); ok {
		return e.Message
	}
	return err.Error()
}

// IsNotFound and the other Is* helpers report whether err carries that code
func IsNotFound(err error) bool           { return GetCode(err) == CodeNotFound }
func IsInvalidArgument(err error) bool    { return GetCode(err) == CodeInvalidArgument }
func IsAlreadyExists(err error) bool      { return GetCode(err) == CodeAlreadyExists }
func IsFailedPrecondition(err error) bool { return GetCode(err) == CodeFailedPrecondition }
func IsAborted(err error) bool            { return GetCode(err) == CodeAborted }
func IsDataLoss(err error) bool           { return GetCode(err) == CodeDataLoss }
func IsInternal(err error) bool           { return GetCode(err) == CodeInternal }
func IsUnavailable(err error) bool        { return GetCode(err) == CodeUnavailable }
func IsCanceled(err error) bool           { return GetCode(err) == CodeCanceled }
