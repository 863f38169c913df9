package services

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a content store failure
type ErrorCode string

const (
	// CodeNotConfigured means the document store is disabled by configuration
	CodeNotConfigured ErrorCode = "not_configured"
	// CodeConnectionFailed means the store could not be reached
	CodeConnectionFailed ErrorCode = "connection_failed"
	// CodeInvalidID means a caller supplied id could not be parsed
	CodeInvalidID ErrorCode = "invalid_id"
	// CodeDriverError means the database rejected or failed the operation
	CodeDriverError ErrorCode = "driver_error"
)

var (
	// ErrNotConfigured is the cause of every NotConfigured error
	ErrNotConfigured = errors.New("document store is not configured")
	// ErrBackoff is the cause of ConnectionFailed errors returned without dialing
	ErrBackoff = errors.New("reconnect backoff in effect")
)

// StoreError is the error returned by every ContentStore operation
type StoreError struct {
	Code  ErrorCode
	Op    string
	Cause error
}

func (e *StoreError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// IsCode reports whether err is a StoreError with the given code
func IsCode(err error, code ErrorCode) bool {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Code == code
	}
	return false
}
