// Package errors provides custom error types for the mintmark system.
// These errors enable programmatic error checking and keep failure handling
// consistent across the resolver, importer, and sync engine.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's chain matches target.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
var As = errors.As

// Common sentinel errors for the mintmark system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates that a resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnresolved indicates that an issuer could not be matched to a country
	ErrUnresolved = errors.New("country unresolved")

	// ErrRemoteUnavailable indicates that the remote store is unreachable
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrRateLimited indicates that the external catalog quota was exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrAuthFailed indicates that catalog authentication was rejected
	ErrAuthFailed = errors.New("authentication failed")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")

	// ErrReadOnly indicates an attempt to modify a read-only resource
	ErrReadOnly = errors.New("read only")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// UnresolvedCountryError indicates that no registry entry cleared the
// resolver's confidence threshold for an issuer.
type UnresolvedCountryError struct {
	IssuerCode string
	IssuerName string
	BestScore  float64
}

// Error implements the error interface
func (e *UnresolvedCountryError) Error() string {
	if e.IssuerName != "" {
		return fmt.Sprintf("no country match for issuer %q (best score %.2f)", e.IssuerName, e.BestScore)
	}
	return fmt.Sprintf("no country match for issuer code %q", e.IssuerCode)
}

// Is implements errors.Is support
func (e *UnresolvedCountryError) Is(target error) bool {
	return target == ErrUnresolved
}

// APIError represents an error from an external HTTP API
type APIError struct {
	Service    string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Service, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == 429:
		return target == ErrRateLimited
	case e.StatusCode == 401 || e.StatusCode == 403:
		return target == ErrAuthFailed
	case e.StatusCode == 404:
		return target == ErrNotFound
	case e.StatusCode >= 500 || e.StatusCode == 0:
		return target == ErrRemoteUnavailable
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(service string, statusCode int, message string) *APIError {
	return &APIError{
		Service:    service,
		StatusCode: statusCode,
		Message:    message,
	}
}

// SyncError represents an error during cache/remote synchronization
type SyncError struct {
	Op     string
	ItemID string
	Err    error
}

// Error implements the error interface
func (e *SyncError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("sync %s failed for item %s: %v", e.Op, e.ItemID, e.Err)
	}
	return fmt.Sprintf("sync %s failed: %v", e.Op, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SyncError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IOError represents a local I/O failure
type IOError struct {
	Operation string
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents a failure to decode serialized data
type ParseError struct {
	Format  string
	Subject string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s as %s: %v", e.Subject, e.Format, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, subject string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Subject: subject, Err: err}
}

// WrapSync wraps an error as a SyncError
func WrapSync(op, itemID string, err error) error {
	if err == nil {
		return nil
	}
	return &SyncError{Op: op, ItemID: itemID, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnresolved checks if an error indicates an unresolved issuer
func IsUnresolved(err error) bool {
	return errors.Is(err, ErrUnresolved)
}

// IsRemoteUnavailable checks if an error indicates an unreachable remote
func IsRemoteUnavailable(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable)
}

// IsAuthFailure checks if an error is an authentication failure
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrAuthFailed)
}

// IsRateLimited checks if an error indicates exhausted quota
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
