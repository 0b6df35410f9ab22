// Package errors provides a structured error type hierarchy for the
// catalog/query layer.
//
// This package defines base error types for common error conditions,
// wrapped error types that add contextual information, and helper
// functions for error wrapping and type checking.
//
// # Error Types
//
// Base errors (sentinel errors):
//   - ErrNotFound - entity absent from the backend
//   - ErrTransport - backend call failed or timed out
//   - ErrInvalid - request validation failed
//   - ErrCanceled - caller canceled the operation
//
// Wrapped error types (add context):
//   - TransportError{Op, Err} - backend call errors
//   - CallError{Op, Ref, Err} - per-entity lookup errors
//   - ConfigError{Path, Err} - configuration errors
//
// Backend faults are always caught at the cache boundary and surfaced
// as one of these types; nothing above the cache layer ever receives a
// raw transport failure.
package errors

import (
	"errors"
	"fmt"
)

// Base error types (sentinel errors).
var (
	// ErrNotFound indicates an entity was not found. It is distinct
	// from a fault so consumers can render an empty state instead of
	// an error indicator.
	ErrNotFound = baseError("not found")

	// ErrTransport indicates a backend call failed or timed out.
	ErrTransport = baseError("backend call failed")

	// ErrInvalid indicates request validation failed.
	ErrInvalid = baseError("invalid")

	// ErrCanceled indicates the caller canceled an operation.
	ErrCanceled = baseError("canceled")
)

// baseError is a string that implements error.
type baseError string

func (e baseError) Error() string { return string(e) }

// TransportError represents a failed backend invocation. The failure is
// cached alongside the key that produced it and retried only on
// explicit invalidation.
type TransportError struct {
	// Op is the backend operation name (e.g. "list_executables").
	Op string
	// Err is the underlying error.
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend %s: %s", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is makes every TransportError match the ErrTransport sentinel.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// CallError represents a failed lookup of a single entity.
type CallError struct {
	// Op is the operation being performed (e.g. "get_executable").
	Op string
	// Ref is the entity reference (optional).
	Ref string
	// Err is the underlying error.
	Err error
}

func (e *CallError) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s %q: %s", e.Op, e.Ref, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// ConfigError represents an error related to configuration.
type ConfigError struct {
	// Path is the configuration file path (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Wrap adds context to an error by wrapping it with an operation name.
// The returned error implements Unwrap() allowing errors.Is and
// errors.As to work with the wrapped error.
func Wrap(err error, op string) error {
	return &wrappedError{op: op, err: err}
}

// wrappedError is an error with an operation context.
type wrappedError struct {
	op  string
	err error
}

func (e *wrappedError) Error() string { return fmt.Sprintf("%s: %s", e.op, e.err) }
func (e *wrappedError) Unwrap() error { return e.err }

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsTransport reports whether err is or wraps ErrTransport.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsInvalid reports whether err is or wraps ErrInvalid.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// IsCanceled reports whether err is or wraps ErrCanceled.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// AsTransportError reports whether err can be typed as a *TransportError.
func AsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// AsCallError reports whether err can be typed as a *CallError.
func AsCallError(err error) (*CallError, bool) {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// AsConfigError reports whether err can be typed as a *ConfigError.
func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
