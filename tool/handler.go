package tool

import (
	"context"

	agui "github.com/spetersoncode/agui"
)

// Handler is a function that executes a tool call and returns a result.
// The context supports cancellation and timeout.
// The call carries the tool call ID and the completed arguments as a JSON
// string. Returns the result content, or an error if execution failed.
type Handler func(ctx context.Context, call agui.ToolCall) (string, error)

// TypedHandler is a function that executes a tool call with typed arguments.
// The args parameter is automatically unmarshaled from the tool call's JSON arguments.
type TypedHandler[T any] func(ctx context.Context, args T) (string, error)

// Validator inspects a completed tool call before execution. A non-nil
// error rejects the call without invoking the handler; it is never retried.
type Validator func(call agui.ToolCall) error
