// Package errors provides centralized error definitions and error handling utilities
// for focusgrid. It defines domain-specific errors, semantic error types,
// error constructors with context wrapping, and error classification helpers.
//
// "No eligible location" is never an error in this codebase: navigate and pick
// report it as an outcome value. The errors here cover malformed input at the
// boundaries (snapshots, fixtures, configuration).
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - SnapshotError: malformed item snapshots handed to navigate or pick
//   - FixtureError: fixture files that cannot be loaded or replayed
//
// Semantic errors represent common error conditions:
//   - NotFoundError: resource not found
//   - ValidationError: invalid input or state
//
// # Usage
//
//	err := errors.NewSnapshotError("meta does not match keys", errors.ErrMetaMismatch).
//	    WithSurface("list").WithLocation("7")
//
//	if errors.Is(err, errors.ErrMetaMismatch) { ... }
//
//	var snapErr *errors.SnapshotError
//	if errors.As(err, &snapErr) { ... }
//
//	if errors.GetSeverity(err) >= errors.SeverityError { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Snapshot-related sentinel errors
var (
	// ErrNonRectangular indicates a plane whose rows differ in length.
	ErrNonRectangular = New("plane rows differ in length")
	// ErrMetaMismatch indicates metadata whose shape differs from the keys.
	ErrMetaMismatch = New("metadata shape does not match items")
	// ErrUnknownKind indicates an item kind other than item, checkbox or radio.
	ErrUnknownKind = New("unknown item kind")
	// ErrUngroupedRadio indicates a radio item without a group name.
	ErrUngroupedRadio = New("radio item has no group")
)

// Fixture-related sentinel errors
var (
	// ErrFixtureFormat indicates a fixture file extension we cannot decode.
	ErrFixtureFormat = New("unsupported fixture format")
	// ErrUnknownStep indicates a replay step with an unrecognized op.
	ErrUnknownStep = New("unknown replay step")
	// ErrCycleOutOfRange indicates a sync step naming a missing update cycle.
	ErrCycleOutOfRange = New("update cycle out of range")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrOperationFailed indicates a general operation failure.
	ErrOperationFailed = New("operation failed")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// FocusgridError is the base interface for all focusgrid errors.
type FocusgridError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity
}

// baseError provides common functionality for all error types.
type baseError struct {
	message  string
	cause    error
	severity Severity
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// format renders "<kind> [k=v, ...]: message: cause".
func (e *baseError) format(kind string, parts []string) string {
	prefix := kind
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", kind, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// SnapshotError reports a malformed list or plane snapshot.
//
// Example:
//
//	err := errors.NewSnapshotError("row 2 is short", errors.ErrNonRectangular).WithSurface("plane")
//	fmt.Println(err) // "snapshot error [surface=plane]: row 2 is short: plane rows differ in length"
type SnapshotError struct {
	baseError
	Surface  string
	Location string
}

// NewSnapshotError creates a new SnapshotError.
func NewSnapshotError(message string, cause error) *SnapshotError {
	return &SnapshotError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityError,
		},
	}
}

// WithSurface records whether the snapshot was a list or a plane.
func (e *SnapshotError) WithSurface(surface string) *SnapshotError {
	e.Surface = surface
	return e
}

// WithLocation records the offending index or coordinates.
func (e *SnapshotError) WithLocation(location string) *SnapshotError {
	e.Location = location
	return e
}

// Error returns the formatted error message.
func (e *SnapshotError) Error() string {
	var parts []string
	if e.Surface != "" {
		parts = append(parts, fmt.Sprintf("surface=%s", e.Surface))
	}
	if e.Location != "" {
		parts = append(parts, fmt.Sprintf("at=%s", e.Location))
	}
	return e.format("snapshot error", parts)
}

// Is checks if this error matches the target.
func (e *SnapshotError) Is(target error) bool {
	if _, ok := target.(*SnapshotError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// FixtureError reports a fixture that cannot be decoded or replayed.
//
// Example:
//
//	err := errors.NewFixtureError("bad step", errors.ErrUnknownStep).WithPath("menu.yaml").WithStep(3)
type FixtureError struct {
	baseError
	Path string
	Step int
}

// NewFixtureError creates a new FixtureError. Step is -1 until WithStep is
// called.
func NewFixtureError(message string, cause error) *FixtureError {
	return &FixtureError{
		baseError: baseError{
			message:  message,
			cause:    cause,
			severity: SeverityError,
		},
		Step: -1,
	}
}

// WithPath records the fixture file path.
func (e *FixtureError) WithPath(path string) *FixtureError {
	e.Path = path
	return e
}

// WithStep records the zero-based replay step index.
func (e *FixtureError) WithStep(step int) *FixtureError {
	e.Step = step
	return e
}

// Error returns the formatted error message.
func (e *FixtureError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	if e.Step >= 0 {
		parts = append(parts, fmt.Sprintf("step=%d", e.Step))
	}
	return e.format("fixture error", parts)
}

// Is checks if this error matches the target.
func (e *FixtureError) Is(target error) bool {
	if _, ok := target.(*FixtureError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("fixture", "menu.yaml")
//	fmt.Println(err) // "fixture 'menu.yaml' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:  fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity: SeverityWarning,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("unknown replace mode").WithField("replace").WithValue("some")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:  message,
			severity: SeverityWarning,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}
	return e.format("validation error", parts)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement FocusgridError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var fgErr FocusgridError
	if As(err, &fgErr) {
		return fgErr.Severity()
	}
	return SeverityError
}

// IsDomainError returns true if the error is a SnapshotError or FixtureError.
func IsDomainError(err error) bool {
	if err == nil {
		return false
	}
	var snapErr *SnapshotError
	var fixtureErr *FixtureError
	return As(err, &snapErr) || As(err, &fixtureErr)
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
// Unlike a bare fmt.Errorf, it returns nil for a nil err.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to load fixture")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
