package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a referenced folder, bookmark or note no
	// longer exists (usually a stale in-memory view).
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input, rejected before any store call
	ValidationError struct {
		Message string
	}

	// CycleError indicates a folder reparent that would create a circular
	// parent reference. Always rejected before persistence.
	CycleError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *CycleError) Error() string        { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *CycleError) StatusCode() int        { return http.StatusConflict }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrCycle          = errors.New("circular folder reference detected")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrStore          = errors.New("store request failed")
	ErrPartialCascade = errors.New("folder delete cascade partially applied")
)

// Is allows errors.Is() matching against the sentinels
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *CycleError) Is(target error) bool        { return target == ErrCycle }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// StoreError wraps a failed store-gateway call. The in-memory view is left
// unchanged when one is returned; callers surface "failed to <action>" and
// never retry automatically.
type StoreError struct {
	Action string // e.g. "create folder", "list bookmarks"
	Err    error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Action, e.Err)
}

// StatusCode implements the HTTPError interface
func (e *StoreError) StatusCode() int { return http.StatusBadGateway }

// Unwrap exposes the underlying store failure
func (e *StoreError) Unwrap() error { return e.Err }

// Is allows errors.Is() to match against ErrStore
func (e *StoreError) Is(target error) bool { return target == ErrStore }

// PartialCascadeError reports a folder delete whose three-step cascade
// (detach bookmarks, promote children, delete record) failed after at least
// one step had already been applied. The caller must re-fetch the folder and
// bookmark collections rather than trust the in-memory state.
type PartialCascadeError struct {
	FolderID       string
	CompletedSteps int // steps that succeeded before the failure (1 or 2)
	Err            error
}

// Error implements the error interface
func (e *PartialCascadeError) Error() string {
	return fmt.Sprintf("folder %s delete cascade failed after %d step(s): %v",
		e.FolderID, e.CompletedSteps, e.Err)
}

// StatusCode implements the HTTPError interface
func (e *PartialCascadeError) StatusCode() int { return http.StatusInternalServerError }

// Unwrap exposes the step failure
func (e *PartialCascadeError) Unwrap() error { return e.Err }

// Is allows errors.Is() to match against ErrPartialCascade
func (e *PartialCascadeError) Is(target error) bool { return target == ErrPartialCascade }
