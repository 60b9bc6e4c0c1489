package tool

import (
	"fmt"
	"time"

	agui "github.com/spetersoncode/agui"
)

// ErrToolNotFound is returned when a tool call references an unregistered tool.
type ErrToolNotFound struct {
	Name string
}

// Error returns a formatted error message including the tool name.
func (e *ErrToolNotFound) Error() string {
	return fmt.Sprintf("tool: not found: %s", e.Name)
}

// Category classifies a missing tool as a configuration problem.
func (e *ErrToolNotFound) Category() agui.ErrorCategory { return agui.ErrorConfiguration }

// ShouldReport reports missing tools to monitoring.
func (e *ErrToolNotFound) ShouldReport() bool { return true }

// ErrToolValidation is returned when a tool call's arguments fail the
// tool's validator or its canExecute check.
type ErrToolValidation struct {
	Name   string
	Reason string
}

// Error returns a formatted error message including the tool name and reason.
func (e *ErrToolValidation) Error() string {
	return fmt.Sprintf("tool: %s validation failed: %s", e.Name, e.Reason)
}

// Category classifies validation failures as user input errors.
func (e *ErrToolValidation) Category() agui.ErrorCategory { return agui.ErrorUserInput }

// ShouldReport does not report validation failures.
func (e *ErrToolValidation) ShouldReport() bool { return false }

// ErrToolTimeout is returned when an execution exceeds the tool's declared
// max execution time.
type ErrToolTimeout struct {
	Name  string
	Limit time.Duration
}

// Error returns a formatted error message including the tool name and limit.
func (e *ErrToolTimeout) Error() string {
	return fmt.Sprintf("tool: %s timed out after %s", e.Name, e.Limit)
}

// Category classifies timeouts as transient.
func (e *ErrToolTimeout) Category() agui.ErrorCategory { return agui.ErrorTransient }

// ShouldReport does not report individual timeouts; persistent ones open
// the circuit breaker, which is reported separately.
func (e *ErrToolTimeout) ShouldReport() bool { return false }

// ErrCircuitOpen is returned, without invoking the executor, while a
// tool's circuit breaker is open. It is never retried.
type ErrCircuitOpen struct {
	Name string
}

// Error returns the user-facing message for an open breaker.
func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("tool: %s is temporarily unavailable", e.Name)
}

// Category classifies an open breaker as a resource error.
func (e *ErrCircuitOpen) Category() agui.ErrorCategory { return agui.ErrorResource }

// ShouldReport does not report open-breaker fast-fails; the failures that
// opened the breaker were already surfaced.
func (e *ErrCircuitOpen) ShouldReport() bool { return false }

// ErrToolAlreadyRegistered is returned when registering a tool with a duplicate name.
type ErrToolAlreadyRegistered struct {
	Name string
}

// Error returns a formatted error message including the duplicate tool name.
func (e *ErrToolAlreadyRegistered) Error() string {
	return fmt.Sprintf("tool: already registered: %s", e.Name)
}

// ErrToolExecution wraps the final error of an exhausted execution,
// preserving the underlying classification for errors.As.
type ErrToolExecution struct {
	Name string
	Err  error
}

// Error returns a formatted error message including the tool name and cause.
func (e *ErrToolExecution) Error() string {
	return fmt.Sprintf("tool: %s execution failed: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *ErrToolExecution) Unwrap() error {
	return e.Err
}
