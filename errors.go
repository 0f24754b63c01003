// errors.go: structured error handling for mnemo cache operations
//
// This file provides structured error types using the go-errors library,
// enabling rich error context, categorization, and standardized error codes
// for all cache operations.
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package mnemo

import (
	goerrors "errors"
	"fmt"

	"github.com/agilira/go-errors"
)

// Error codes for mnemo cache operations
const (
	// Configuration errors
	ErrCodeInvalidConfig errors.ErrorCode = "MNEMO_INVALID_CONFIG"

	// Key and lookup errors
	ErrCodeKeyFormat   errors.ErrorCode = "MNEMO_KEY_FORMAT"
	ErrCodeKeyNotFound errors.ErrorCode = "MNEMO_KEY_NOT_FOUND"

	// Construction errors
	ErrCodeInvalidSource errors.ErrorCode = "MNEMO_INVALID_SOURCE"

	// Persistence errors
	ErrCodeCorruptedPack errors.ErrorCode = "MNEMO_CORRUPTED_PACK"
	ErrCodeSaveFailed    errors.ErrorCode = "MNEMO_SAVE_FAILED"
	ErrCodeLoadFailed    errors.ErrorCode = "MNEMO_LOAD_FAILED"

	// Internal errors
	ErrCodePanicRecovered errors.ErrorCode = "MNEMO_PANIC_RECOVERED"
)

// Common error messages
const (
	msgInvalidConfig  = "invalid configuration"
	msgKeyFormat      = "key or args cannot be deterministically serialized"
	msgKeyNotFound    = "record not found or stale"
	msgInvalidSource  = "store source must be a store document or JSON text"
	msgCorruptedPack  = "packed blob is corrupt or truncated"
	msgSaveFailed     = "failed to write store blob"
	msgLoadFailed     = "failed to read store blob"
	msgPanicRecovered = "panic recovered in memoized function"
)

// NewErrInvalidConfig creates an error for an invalid configuration value
func NewErrInvalidConfig(field string, value interface{}) error {
	return errors.NewWithContext(ErrCodeInvalidConfig, msgInvalidConfig, map[string]interface{}{
		"field": field,
		"value": fmt.Sprintf("%v", value),
	})
}

// NewErrKeyFormat creates an error when a key or args value cannot be serialized
func NewErrKeyFormat(what string, cause error) error {
	return errors.Wrap(cause, ErrCodeKeyFormat, msgKeyFormat).
		WithContext("input", what)
}

// NewErrKeyNotFound creates an error when no fresh record exists for (key, args)
func NewErrKeyNotFound(key string, args string) error {
	return errors.NewWithContext(ErrCodeKeyNotFound, msgKeyNotFound, map[string]interface{}{
		"key":  key,
		"args": args,
	})
}

// NewErrInvalidSource creates an error when a store is constructed from a
// source that is neither a store document nor JSON text
func NewErrInvalidSource(source interface{}) error {
	return errors.NewWithField(ErrCodeInvalidSource, msgInvalidSource, "source_type", fmt.Sprintf("%T", source))
}

// NewErrCorruptedPack creates an error when a packed blob fails to decompress
// or decode
func NewErrCorruptedPack(cause error) error {
	return errors.Wrap(cause, ErrCodeCorruptedPack, msgCorruptedPack)
}

// NewErrSaveFailed creates an error when writing a blob to a byte stream fails
func NewErrSaveFailed(target string, cause error) error {
	return errors.Wrap(cause, ErrCodeSaveFailed, msgSaveFailed).
		WithContext("target", target).
		AsRetryable()
}

// NewErrLoadFailed creates an error when reading a blob from a byte stream fails
func NewErrLoadFailed(source string, cause error) error {
	return errors.Wrap(cause, ErrCodeLoadFailed, msgLoadFailed).
		WithContext("source", source).
		AsRetryable()
}

// NewErrPanicRecovered creates an error when a memoized function panics
func NewErrPanicRecovered(key string, panicValue interface{}) error {
	return errors.NewWithContext(ErrCodePanicRecovered, msgPanicRecovered, map[string]interface{}{
		"key":         key,
		"panic_value": fmt.Sprintf("%v", panicValue),
	}).WithSeverity("critical")
}

// =============================================================================
// ERROR CHECKING HELPERS
// =============================================================================

// IsNotFound checks if error reports a missing or stale record
func IsNotFound(err error) bool {
	return errors.HasCode(err, ErrCodeKeyNotFound)
}

// IsKeyFormat checks if error is a key formatting error
func IsKeyFormat(err error) bool {
	return errors.HasCode(err, ErrCodeKeyFormat)
}

// IsCorruptedPack checks if error reports a corrupt packed blob
func IsCorruptedPack(err error) bool {
	return errors.HasCode(err, ErrCodeCorruptedPack)
}

// IsInvalidSource checks if error reports a malformed construction source
func IsInvalidSource(err error) bool {
	return errors.HasCode(err, ErrCodeInvalidSource)
}

// IsPersistenceError checks if error is a persistence error
func IsPersistenceError(err error) bool {
	if err == nil {
		return false
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		code := coder.ErrorCode()
		return code == ErrCodeSaveFailed || code == ErrCodeLoadFailed || code == ErrCodeCorruptedPack
	}
	return false
}

// IsRetryable checks if the error can be retried
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var retryable errors.Retryable
	if goerrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}

// GetErrorContext extracts context from an error
func GetErrorContext(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	var mnemoErr *errors.Error
	if goerrors.As(err, &mnemoErr) {
		return mnemoErr.Context
	}
	return nil
}
