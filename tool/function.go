package tool

import (
	"context"

	"github.com/hupe1980/convokit/internal/util"
)

// FunctionTool is a generic adapter that exposes a plain Go function as a
// convokit tool.
//
// A FunctionTool has no internal mutable state after construction and is
// safe for concurrent use by multiple goroutines. The parameters map should
// follow the minimal JSON Schema shape used elsewhere in the project; only
// the "required" list is enforced by the registry before execution.
type FunctionTool struct {
	// Tool identifier (snake_case recommended)
	name string
	// Human-readable description scanned by the intent matcher
	description string
	// JSON schema describing accepted arguments
	parameters map[string]any
	// User supplied implementation
	fn func(ctx context.Context, args map[string]any) (string, error)
}

// NewFunctionTool constructs a FunctionTool from explicit schema and function.
//
// Example:
//
//	weather := NewFunctionTool(
//	  "get_weather",
//	  "Get current weather information for a city",
//	  map[string]any{
//	    "type": "object",
//	    "properties": map[string]any{
//	      "city": map[string]any{"type": "string"},
//	    },
//	    "required": []string{"city"},
//	  },
//	  func(_ context.Context, args map[string]any) (string, error) {
//	    city, _ := args["city"].(string)
//	    return "Sunny in " + city, nil
//	  },
//	)
func NewFunctionTool(
	name, description string,
	parameters map[string]any,
	fn func(ctx context.Context, args map[string]any) (string, error),
) *FunctionTool {
	return &FunctionTool{
		name:        name,
		description: description,
		parameters:  parameters,
		fn:          fn,
	}
}

// NewFunctionToolFromStruct derives the parameter schema from a struct using
// reflection. It is a convenience for simple argument containers.
//
// Example:
//
//	type WeatherArgs struct {
//	  City string `json:"city" description:"City to look up"`
//	}
//
//	weather := NewFunctionToolFromStruct("get_weather", "Get weather", WeatherArgs{}, fn)
func NewFunctionToolFromStruct(
	name, description string,
	structType any,
	fn func(ctx context.Context, args map[string]any) (string, error),
) *FunctionTool {
	return NewFunctionTool(name, description, util.CreateSchema(structType), fn)
}

// Name returns the unique tool name used for registry lookup and routing.
func (t *FunctionTool) Name() string { return t.name }

// Description returns the short natural language description of the tool.
func (t *FunctionTool) Description() string { return t.description }

// Parameters returns the (minimal) JSON schema describing expected arguments.
func (t *FunctionTool) Parameters() map[string]any { return t.parameters }

// Call invokes the wrapped function. Non-ToolError failures are wrapped as
// *ToolError with code EXECUTION_ERROR for uniform downstream handling.
func (t *FunctionTool) Call(ctx context.Context, args map[string]any) (string, error) {
	text, err := t.fn(ctx, args)
	if err != nil {
		if toolErr, ok := err.(*ToolError); ok {
			return "", toolErr
		}
		return "", &ToolError{
			Tool:    t.name,
			Message: err.Error(),
			Code:    "EXECUTION_ERROR",
		}
	}
	return text, nil
}
