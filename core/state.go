package core

// StateKind enumerates the phases the orchestrator can be in between turns.
type StateKind string

const (
	// StateIdle means no work is pending; the next input starts a fresh turn.
	StateIdle StateKind = "idle"
	// StateAwaitingInput means the orchestrator asked the user a clarifying
	// question and expects a free-form reply.
	StateAwaitingInput StateKind = "awaiting_input"
	// StateExecutingTool means a tool invocation is in flight.
	StateExecutingTool StateKind = "executing_tool"
	// StateWaitingFor means a tool call was suspended because a required
	// parameter was missing; State.Param carries the parameter name.
	StateWaitingFor StateKind = "waiting_for"
)

// State is a tagged value describing what the orchestrator is mid-way
// through. Param is meaningful only when Kind is StateWaitingFor.
type State struct {
	Kind  StateKind `json:"kind"`
	Param string    `json:"param,omitempty"`
}

// Idle returns the idle state.
func Idle() State { return State{Kind: StateIdle} }

// AwaitingInput returns the awaiting-input state.
func AwaitingInput() State { return State{Kind: StateAwaitingInput} }

// ExecutingTool returns the executing-tool state.
func ExecutingTool() State { return State{Kind: StateExecutingTool} }

// WaitingFor returns a waiting state parameterized by the missing parameter name.
func WaitingFor(param string) State { return State{Kind: StateWaitingFor, Param: param} }

// IsWaiting reports whether the state is waiting for a parameter value.
func (s State) IsWaiting() bool { return s.Kind == StateWaitingFor }

// TurnState is a passive record of the current state plus the name of the
// tool whose invocation was interrupted by a missing parameter.
//
// No validation is performed on transitions: any state may be set from any
// state. The orchestrator alone drives valid sequences, which keeps the
// transition logic in one place where it can be unit-tested as a whole.
type TurnState struct {
	state           State
	interruptedTool string
}

// NewTurnState creates a turn state starting at idle with no interrupted tool.
func NewTurnState() *TurnState { return &TurnState{state: Idle()} }

// State returns the current state value.
func (t *TurnState) State() State { return t.state }

// SetState replaces the current state value.
func (t *TurnState) SetState(s State) { t.state = s }

// InterruptedTool returns the name of the tool awaiting a missing parameter,
// or the empty string when none is pending.
func (t *TurnState) InterruptedTool() string { return t.interruptedTool }

// SetInterruptedTool records the tool whose invocation was paused.
func (t *TurnState) SetInterruptedTool(name string) { t.interruptedTool = name }

// ExpectedParam returns the parameter name the orchestrator is waiting for.
// The second return is false unless the current state is waiting_for.
func (t *TurnState) ExpectedParam() (string, bool) {
	if t.state.Kind != StateWaitingFor {
		return "", false
	}
	return t.state.Param, true
}

// Reset returns the record to idle and clears the interrupted tool.
func (t *TurnState) Reset() {
	t.state = Idle()
	t.interruptedTool = ""
}
