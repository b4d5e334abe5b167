package intent

import (
	"context"

	"github.com/hupe1980/convokit/conversation"
	"github.com/hupe1980/convokit/core"
	"github.com/hupe1980/convokit/tool"
)

// ToolMatchHandler is a convenience handler that routes to the best matching
// registered tool using the ToolMatches substring heuristic. It produces a
// call_tool decision carrying no extracted parameters; tools relying on
// required parameters trigger the waiting-state flow instead.
type ToolMatchHandler struct {
	tools func() []tool.Tool
}

// NewToolMatchHandler constructs a handler over a tools provider, typically
// the registry's List method.
func NewToolMatchHandler(tools func() []tool.Tool) *ToolMatchHandler {
	return &ToolMatchHandler{tools: tools}
}

// Handle returns a call_tool decision for the highest ranked tool, or nil
// when no tools are registered.
func (h *ToolMatchHandler) Handle(_ context.Context, input string, _ *conversation.Log, _ core.State) (*core.Decision, error) {
	matches := rankTools(input, h.tools())
	if len(matches) == 0 {
		return nil, nil
	}
	best := matches[0]
	return &core.Decision{
		Kind:       core.DecisionCallTool,
		ToolName:   best.Tool.Name(),
		Parameters: map[string]any{},
		Confidence: best.Confidence,
	}, nil
}
