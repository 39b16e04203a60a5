// Package mapmul structured error types for better error handling
package mapmul

import (
	"errors"
	"fmt"
)

// ErrorType represents categories of errors
type ErrorType int

const (
	// Store access errors (lookup/update/delete)
	ErrTypeStore ErrorType = iota
	// Store handle resolution errors
	ErrTypeResolve
	// Configuration precondition violations
	ErrTypeConfig
	// Kernel invocation errors
	ErrTypeExecution
	// Numerical verification errors
	ErrTypeNumerical
)

// KernelError represents a structured error with context
type KernelError struct {
	Type    ErrorType
	Op      string      // Operation that failed
	Message string      // Human-readable message
	Err     error       // Underlying error if any
	Context interface{} // Additional context
}

// Error implements the error interface
func (e *KernelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mapmul %s error in %s: %s (caused by: %v)",
			e.Type.String(), e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("mapmul %s error in %s: %s",
		e.Type.String(), e.Op, e.Message)
}

// Unwrap allows error chain inspection
func (e *KernelError) Unwrap() error {
	return e.Err
}

// String returns the error type as a string
func (t ErrorType) String() string {
	switch t {
	case ErrTypeStore:
		return "Store"
	case ErrTypeResolve:
		return "Resolve"
	case ErrTypeConfig:
		return "Config"
	case ErrTypeExecution:
		return "Execution"
	case ErrTypeNumerical:
		return "Numerical"
	default:
		return "Unknown"
	}
}

// Common error constructors

// NewStoreError creates a store access error
func NewStoreError(op string, message string, err error) error {
	return &KernelError{
		Type:    ErrTypeStore,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewResolveError creates a store handle resolution error
func NewResolveError(op string, message string) error {
	return &KernelError{
		Type:    ErrTypeResolve,
		Op:      op,
		Message: message,
	}
}

// NewConfigError creates a configuration precondition error
func NewConfigError(op string, message string) error {
	return &KernelError{
		Type:    ErrTypeConfig,
		Op:      op,
		Message: message,
	}
}

// NewExecutionError creates a kernel invocation error
func NewExecutionError(op string, message string, err error) error {
	return &KernelError{
		Type:    ErrTypeExecution,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// NewNumericalError creates a numerical verification error
func NewNumericalError(op string, message string, context interface{}) error {
	return &KernelError{
		Type:    ErrTypeNumerical,
		Op:      op,
		Message: message,
		Context: context,
	}
}

// Error type checking helpers

func isErrorType(err error, t ErrorType) bool {
	var kerr *KernelError
	if errors.As(err, &kerr) {
		return kerr.Type == t
	}
	return false
}

// IsStoreError checks if an error is a store access error
func IsStoreError(err error) bool {
	return isErrorType(err, ErrTypeStore)
}

// IsResolveError checks if an error is a handle resolution error
func IsResolveError(err error) bool {
	return isErrorType(err, ErrTypeResolve)
}

// IsConfigError checks if an error is a configuration precondition error
func IsConfigError(err error) bool {
	return isErrorType(err, ErrTypeConfig)
}

// IsExecutionError checks if an error is a kernel invocation error
func IsExecutionError(err error) bool {
	return isErrorType(err, ErrTypeExecution)
}

// IsNumericalError checks if an error is a numerical verification error
func IsNumericalError(err error) bool {
	return isErrorType(err, ErrTypeNumerical)
}

// Common pre-defined errors

var (
	// ErrKeyNotFound indicates a lookup for an absent key
	ErrKeyNotFound = NewStoreError("Lookup", "no element for key", nil)

	// ErrKeyExists indicates a create-only update on an existing key
	ErrKeyExists = NewStoreError("Update", "key already exists", nil)

	// ErrDeleteUnsupported indicates delete on a map type without delete support
	ErrDeleteUnsupported = NewStoreError("Delete", "map type does not support delete", nil)

	// ErrUnboundStore indicates a store ordinal with no map bound to it
	ErrUnboundStore = NewResolveError("Resolve", "no map bound to store ordinal")
)
