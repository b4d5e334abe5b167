// Package tool implements the capability subsystem that lets the
// orchestrator invoke structured tools with schema checked arguments and
// consistent error handling.
package tool

import (
	"context"
	"fmt"
)

// Tool defines the interface for extending the orchestrator with external
// capabilities.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Declare a minimal JSON-Schema-like parameter map (or nil for none)
//   - Handle errors gracefully
//   - Follow consistent naming conventions (snake_case recommended)
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what this tool
	// does. The intent resolver's substring matcher also scans it.
	Description() string

	// Parameters returns a JSON-Schema-like map describing the expected
	// arguments, or nil when the tool takes none. Only the "required" name
	// list is enforced before invocation.
	Parameters() map[string]any

	// Call executes the tool. It may suspend on the context for arbitrarily
	// long; the registry imposes no timeout.
	Call(ctx context.Context, args map[string]any) (string, error)
}

// NotFoundError is returned inside an outcome when no tool with the
// requested name is registered.
type NotFoundError struct {
	Tool string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("tool %s not found", e.Tool) }

// MissingParametersError reports required argument names absent from an
// invocation. Missing preserves the schema's declared order and carries the
// full list, not just the first entry.
type MissingParametersError struct {
	Tool    string
	Missing []string
}

func (e *MissingParametersError) Error() string { return "missing required parameters" }

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`    // Name of the tool that failed
	Message string `json:"message"` // Error message
	Code    string `json:"code"`    // Error code for categorization
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
