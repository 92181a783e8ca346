package domain

import "fmt"

// Error types for consistent error handling across the API.

// ErrDataUnavailable indicates the data file is missing or malformed.
// Fatal to any endpoint that needs the snapshot.
type ErrDataUnavailable struct {
	Path string
	Err  error
}

func (e *ErrDataUnavailable) Error() string {
	return fmt.Sprintf("data unavailable [%s]: %v", e.Path, e.Err)
}

func (e *ErrDataUnavailable) Unwrap() error {
	return e.Err
}

// ErrNotConfigured indicates a required credential or setting is absent.
// Checked proactively, before any outbound call is attempted.
type ErrNotConfigured struct {
	Setting string
}

func (e *ErrNotConfigured) Error() string {
	return fmt.Sprintf("%s not configured", e.Setting)
}

// ErrProvider indicates the completion provider rejected the call or
// returned no usable content.
type ErrProvider struct {
	Provider string
	Message  string
}

func (e *ErrProvider) Error() string {
	return fmt.Sprintf("provider error [%s]: %s", e.Provider, e.Message)
}

// ErrTransport indicates a network-level failure reaching the provider.
type ErrTransport struct {
	Provider string
	Err      error
}

func (e *ErrTransport) Error() string {
	return fmt.Sprintf("transport error [%s]: %v", e.Provider, e.Err)
}

func (e *ErrTransport) Unwrap() error {
	return e.Err
}

// ErrValidation indicates a validation error (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}

// ErrTimeout indicates an operation exceeded its deadline.
type ErrTimeout struct {
	Operation string
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("operation timed out: %s", e.Operation)
}
