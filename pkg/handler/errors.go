package handler

import (
	"errors"
	"fmt"
)

// Phase identifies which side of the workflow a hook ran on.
type Phase string

const (
	PhasePre  Phase = "pre"
	PhasePost Phase = "post"
)

// HookError wraps a failure from a named hook, keeping the phase so
// the caller can tell a setup failure from a stage-out failure.
type HookError struct {
	Phase   Phase
	Handler string
	Cause   error
}

// Error implements the error interface.
func (e *HookError) Error() string {
	return fmt.Sprintf("[%s-execution hook %s] %v", e.Phase, e.Handler, e.Cause)
}

// Unwrap returns the underlying error.
func (e *HookError) Unwrap() error {
	return e.Cause
}

// NewHookError creates a new HookError.
func NewHookError(phase Phase, handler string, cause error) *HookError {
	return &HookError{Phase: phase, Handler: handler, Cause: cause}
}

// IsHookError checks if the error is (or wraps) a HookError.
func IsHookError(err error) bool {
	var he *HookError
	return errors.As(err, &he)
}
