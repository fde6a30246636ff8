// Copyright © 2025-2026 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package errors

import (
	"errors"
	"fmt"
)

// base error structure, pairing one registry code with a
// human readable message
type Error struct {
	code ErrCode
	msg  string
}

// Error() prints out the error message string
func (e *Error) Error() string {
	return e.msg
}

// Code returns the registry code carried by this error
func (e *Error) Code() ErrCode {
	return e.code
}

// Creates a new error msg without error code
func New(msg string) error {
	return &Error{
		msg: msg,
	}
}

// Wraps the error msg with recognized error codes
func Wrap(code ErrCode, msg string) error {
	return &Error{
		code: code,
		msg:  msg,
	}
}

// Wrapf works like Wrap with a format specifier for the message
func Wrapf(code ErrCode, format string, args ...any) error {
	return &Error{
		code: code,
		msg:  fmt.Sprintf(format, args...),
	}
}

// GetErrCode gets the error code if the error is
// associated to recognizable error types
func GetErrCode(err error) ErrCode {
	val, ok := err.(*Error)
	if ok {
		return val.code
	}
	return Unknown
}

// Is reports whether any error in err's tree matches target,
// passthrough to the standard library allowing consumers to
// work with a single errors import
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree matching target,
// passthrough to the standard library
func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound returns true if err
// item isn't found in the space
func IsNotFound(err error) bool {
	return GetErrCode(err) == NotFound
}

// IsAlreadyExists returns true if err
// item already exists in the space
func IsAlreadyExists(err error) bool {
	return GetErrCode(err) == AlreadyExists
}

// IsInvalidArgument returns true if err
// item is invalid argument
func IsInvalidArgument(err error) bool {
	return GetErrCode(err) == InvalidArgument
}

// IsResourceLocked returns true if err corresponds to a
// resource held by another owner
func IsResourceLocked(err error) bool {
	return GetErrCode(err) == ResourceLocked
}

// IsConnNotInitialized returns true if err reports use of a
// connection before initialization
func IsConnNotInitialized(err error) bool {
	return GetErrCode(err) == ConnNotInitialized
}

// IsMessageNotDelivered returns true if err reports a message
// that never reached the broker
func IsMessageNotDelivered(err error) bool {
	return GetErrCode(err) == MessageNotDelivered
}
