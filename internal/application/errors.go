package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrCancelled        = errors.New("cancelled")
	ErrProtectedRoot    = errors.New("built-in container")
	ErrNotEmpty         = errors.New("folder is not empty")
	ErrCycle            = errors.New("move would create a cycle")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MoveError represents a move-related failure
type MoveError struct {
	SourceID string
	DestID   string
	Reason   string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("cannot move %s to %s: %s", e.SourceID, e.DestID, e.Reason)
}

func (e *MoveError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// CycleError is returned when a folder would be moved into itself or one of
// its descendants
type CycleError struct {
	SourceID string
	DestID   string
}

func (e *CycleError) Error() string {
	if e.SourceID == e.DestID {
		return fmt.Sprintf("cannot move %s into itself", e.SourceID)
	}
	return fmt.Sprintf("cannot move %s into its descendant %s", e.SourceID, e.DestID)
}

func (e *CycleError) Is(target error) bool {
	return target == ErrCycle
}

// StoreError wraps a failure reported by the bookmark store
type StoreError struct {
	Op  string
	ID  string
	Err error
}

func (e *StoreError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s %s: %v", e.Op, e.ID, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsUserError reports whether err was caused by input that was rejected
// before reaching the store
func IsUserError(err error) bool {
	var valErr *ValidationError
	var moveErr *MoveError
	var cycleErr *CycleError
	return errors.As(err, &valErr) || errors.As(err, &moveErr) || errors.As(err, &cycleErr) ||
		errors.Is(err, ErrCancelled)
}
