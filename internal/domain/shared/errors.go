// Package shared contains common domain types, errors, events, and the
// key-value storage contract used across all domain packages.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrNegativeValue   = errors.New("value cannot be negative")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid format")

	// State errors
	ErrInvalidState     = errors.New("invalid state")
	ErrAlreadyProcessed = errors.New("already processed")
	ErrPrecondition     = errors.New("precondition failed")

	// Storage errors
	ErrStorageWrite = errors.New("storage write failed")
	ErrStorageRead  = errors.New("storage read failed")

	// External service errors
	ErrExternalService    = errors.New("external service error")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrTimeout            = errors.New("operation timeout")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "track", "progress", "streak"
	Op      string // Operation that failed, e.g., "Advance", "Evaluate"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Track domain errors
var (
	ErrTrackNotFound    = NewDomainError("track", "Find", ErrNotFound, "track not found")
	ErrTrackExists      = NewDomainError("track", "Add", ErrAlreadyExists, "track with this id already cached")
	ErrTrackMissingID   = NewDomainError("track", "Validate", ErrInvalidID, "track has no id")
	ErrNoCheckpoints    = NewDomainError("track", "Validate", ErrInvalidEntity, "track has no checkpoints")
	ErrInvalidTrackSpec = NewDomainError("track", "Validate", ErrInvalidInput, "invalid track creation request")
)

// Progress and wallet domain errors
var (
	ErrProgressWrite       = NewDomainError("progress", "Save", ErrStorageWrite, "failed to persist progress")
	ErrCoinsWrite          = NewDomainError("wallet", "Save", ErrStorageWrite, "failed to persist coin balance")
	ErrInsufficientCoins   = NewDomainError("wallet", "Spend", ErrPrecondition, "insufficient coin balance")
	ErrCheckpointOutOfTurn = NewDomainError("progress", "CompleteStage", ErrInvalidState, "checkpoint is not the next expected one")
)

// Streak and achievement domain errors
var (
	ErrStreakWrite       = NewDomainError("streak", "Save", ErrStorageWrite, "failed to persist streak record")
	ErrAchievementsWrite = NewDomainError("achievement", "Save", ErrStorageWrite, "failed to persist earned achievements")
)

// Remote API errors
var (
	ErrAPIUnavailable     = NewDomainError("courseit", "Request", ErrServiceUnavailable, "courseit API is unavailable")
	ErrAPITimeout         = NewDomainError("courseit", "Request", ErrTimeout, "courseit API request timed out")
	ErrAPIInvalidResponse = NewDomainError("courseit", "Parse", ErrInvalidFormat, "invalid response from courseit API")
	ErrInvalidScore       = NewDomainError("courseit", "Assess", ErrValueOutOfRange, "assessment score outside 0-10")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrValueOutOfRange)
}

// IsExternalService checks if the error is from an external service.
func IsExternalService(err error) bool {
	return errors.Is(err, ErrExternalService) ||
		errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrTimeout)
}

// IsTimeout checks if the error is a timeout. Callers surface timeouts
// differently from other remote failures.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
