package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of failure
type ErrorCode string

const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Package resolution errors
	ErrUnknownPackage   ErrorCode = "UNKNOWN_PACKAGE"
	ErrVersionConflict  ErrorCode = "VERSION_CONFLICT"
	ErrCyclicDependency ErrorCode = "CYCLIC_DEPENDENCY"
	ErrHasDependents    ErrorCode = "HAS_DEPENDENTS"

	// Version parsing errors
	ErrInvalidVersionFormat ErrorCode = "INVALID_VERSION_FORMAT"
	ErrInvalidMatcherFormat ErrorCode = "INVALID_MATCHER_FORMAT"

	// Collaborator errors
	ErrDownloadFailed           ErrorCode = "DOWNLOAD_FAILED"
	ErrUnsupportedArchiveFormat ErrorCode = "UNSUPPORTED_ARCHIVE_FORMAT"
	ErrExtractFailed            ErrorCode = "EXTRACT_FAILED"
	ErrCommandFailed            ErrorCode = "COMMAND_FAILED"
	ErrChecksumMismatch         ErrorCode = "CHECKSUM_MISMATCH"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// NoxError is an error with a stable code, a message and structured
// details. Codes are what callers and tests match on; messages may change.
type NoxError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *NoxError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *NoxError) Unwrap() error {
	return e.Wrapped
}

// Is matches any NoxError with the same code, so errors.Is(err,
// &NoxError{Code: c}) finds c anywhere in the chain
func (e *NoxError) Is(target error) bool {
	var targetErr *NoxError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

func newError(wrapped error, code ErrorCode, message string) *NoxError {
	return &NoxError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: wrapped,
	}
}

// New creates a NoxError
func New(code ErrorCode, message string) *NoxError {
	return newError(nil, code, message)
}

// Newf creates a NoxError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *NoxError {
	return newError(nil, code, fmt.Sprintf(format, args...))
}

// Wrap wraps err under code. It returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) *NoxError {
	if err == nil {
		return nil
	}
	return newError(err, code, message)
}

// Wrapf wraps err under code with a formatted message. It returns nil when
// err is nil.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *NoxError {
	if err == nil {
		return nil
	}
	return newError(err, code, fmt.Sprintf(format, args...))
}

// WithDetail attaches a key/value pair and returns e for chaining
func (e *NoxError) WithDetail(key string, value interface{}) *NoxError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode reports whether any NoxError in err's chain carries code.
func IsErrorCode(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, &NoxError{Code: code})
}

// GetErrorCode returns the outermost error code, or ErrUnknown if err is not a NoxError
func GetErrorCode(err error) ErrorCode {
	var noxErr *NoxError
	if errors.As(err, &noxErr) {
		return noxErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails merges the details of every NoxError in err's chain,
// outer errors taking precedence. It returns nil if there is no NoxError.
func GetErrorDetails(err error) map[string]interface{} {
	var merged map[string]interface{}
	for err != nil {
		var noxErr *NoxError
		if !errors.As(err, &noxErr) {
			break
		}
		if merged == nil {
			merged = make(map[string]interface{})
		}
		for k, v := range noxErr.Details {
			if _, exists := merged[k]; !exists {
				merged[k] = v
			}
		}
		err = noxErr.Wrapped
	}
	return merged
}
