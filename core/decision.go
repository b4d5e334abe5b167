package core

// DecisionKind enumerates the routing outcomes the intent resolver can produce.
type DecisionKind string

const (
	// DecisionCallTool routes the turn to a registered tool.
	DecisionCallTool DecisionKind = "call_tool"
	// DecisionContinueFlow supplies a value for the parameter a suspended
	// tool call is waiting for.
	DecisionContinueFlow DecisionKind = "continue_flow"
	// DecisionClarify asks the user to rephrase or add detail.
	DecisionClarify DecisionKind = "clarify"
	// DecisionChitChat is the default small-talk route when nothing else
	// clears the confidence threshold.
	DecisionChitChat DecisionKind = "chit_chat"
)

// Decision is the ranked routing verdict for one turn. It is produced fresh
// on every turn and never persisted.
type Decision struct {
	Kind       DecisionKind   `json:"kind"`
	ToolName   string         `json:"tool_name,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Confidence float64        `json:"confidence"`
}

// Outcome is the transient result of a single tool invocation attempt.
//
// MissingParams carries the full ordered list of required parameter names
// absent from the arguments, not just the first; consumers that only need
// one use the first entry.
type Outcome struct {
	Succeeded     bool     `json:"succeeded"`
	Text          string   `json:"text,omitempty"`
	ErrorMessage  string   `json:"error_message,omitempty"`
	MissingParams []string `json:"missing_params,omitempty"`
}
