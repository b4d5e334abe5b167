// Package agent implements the orchestrator core loop: it records input in
// the conversation log, asks the intent resolver for a decision, dispatches
// to the tool registry or a canned reply, and drives the turn-spanning
// waiting-for-parameter state machine.
package agent

import (
	"context"
	"fmt"

	"github.com/hupe1980/convokit/conversation"
	"github.com/hupe1980/convokit/core"
	"github.com/hupe1980/convokit/intent"
	"github.com/hupe1980/convokit/logging"
	"github.com/hupe1980/convokit/prompt"
	"github.com/hupe1980/convokit/tool"
)

// Well-known template names consulted for canned replies. Each has a fixed
// fallback used when no template is registered under the name.
const (
	TemplateGreeting     = "greeting"
	TemplateClarify      = "clarify"
	TemplateMissingParam = "missing_param"
)

const (
	fallbackGreeting  = "Hello! How can I help you today?"
	fallbackClarify   = "Could you tell me a bit more about what you need?"
	fallbackApology   = "Sorry, something went wrong while handling that. Please try again."
	nothingToContinue = "There is nothing to continue. What would you like to do?"
)

// Options configure an Agent.
type Options struct {
	// Description is shown in greetings and exposed to intent handlers.
	Description string
	// MinConfidence is the intent eligibility threshold. Must be in [0,1].
	MinConfidence float64
	// DefaultPrompts seeds the template registry (name -> template text).
	DefaultPrompts map[string]string
	// Logger receives turn diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Response is the public result of one turn. HandleTurn always returns a
// response; failures surface as user-facing content plus the structured
// diagnostic fields, never as an error.
type Response struct {
	Content    string            `json:"content"`
	Intent     core.DecisionKind `json:"intent,omitempty"`
	ToolName   string            `json:"tool_name,omitempty"`
	ToolResult string            `json:"tool_result,omitempty"`
}

// pendingCall is the explicit {toolName, arguments} pair persisted so that a
// later continuation turn can merge newly supplied parameters into the
// original call.
type pendingCall struct {
	toolName string
	args     map[string]any
}

// Agent is the orchestrator for one logical conversation. It owns the
// conversation log and turn state exclusively; callers must not run more
// than one HandleTurn against the same instance at a time.
type Agent struct {
	name        string
	version     string
	description string

	logger    logging.Logger
	log       *conversation.Log
	state     *core.TurnState
	registry  *tool.Registry
	resolver  *intent.Resolver
	templates *prompt.Registry
	lastCall  *pendingCall
}

// New constructs an Agent. Malformed configuration (empty name or a
// confidence threshold outside [0,1]) fails fast; everything after
// construction is absorbed into responses instead.
func New(name, version string, optFns ...func(o *Options)) (*Agent, error) {
	opts := Options{
		MinConfidence: intent.DefaultMinConfidence,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if name == "" {
		return nil, fmt.Errorf("agent name must not be empty")
	}
	if opts.MinConfidence < 0 || opts.MinConfidence > 1 {
		return nil, fmt.Errorf("min confidence %v outside [0,1]", opts.MinConfidence)
	}

	a := &Agent{
		name:        name,
		version:     version,
		description: opts.Description,
		logger:      opts.Logger,
		log:         conversation.NewLog(),
		state:       core.NewTurnState(),
		templates:   prompt.NewRegistry(),
	}
	a.registry = tool.NewRegistry(func(o *tool.RegistryOptions) { o.Logger = opts.Logger })
	a.resolver = intent.NewResolver(func(o *intent.ResolverOptions) {
		o.MinConfidence = opts.MinConfidence
		o.Logger = opts.Logger
	})

	for tmplName, text := range opts.DefaultPrompts {
		a.templates.Add(tmplName, text)
	}

	return a, nil
}

// Name returns the configured agent name.
func (a *Agent) Name() string { return a.name }

// Version returns the configured agent version.
func (a *Agent) Version() string { return a.version }

// Description returns the configured agent description.
func (a *Agent) Description() string { return a.description }

// State returns the current turn state value.
func (a *Agent) State() core.State { return a.state.State() }

// InterruptedTool returns the tool name recorded when an invocation was
// paused awaiting a missing parameter, or the empty string.
func (a *Agent) InterruptedTool() string { return a.state.InterruptedTool() }

// Log returns the conversation log. Intent handlers receive it on every
// turn; external callers should treat it as read-only.
func (a *Agent) Log() *conversation.Log { return a.log }

// RegisterTool adds a tool to the registry.
func (a *Agent) RegisterTool(t tool.Tool) { a.registry.Register(t) }

// RegisterTools adds multiple tools in the given order.
func (a *Agent) RegisterTools(tools ...tool.Tool) { a.registry.RegisterAll(tools...) }

// Tools returns the registered tools in registration order.
func (a *Agent) Tools() []tool.Tool { return a.registry.List() }

// RegisterIntentHandler appends an intent handler to the resolver's
// evaluation order. This is the only registration surface; the resolver
// itself is never exposed so the agent stays in control of its invariants.
func (a *Agent) RegisterIntentHandler(h intent.Handler) { a.resolver.RegisterHandler(h) }

// AddPromptTemplate stores a canned-reply template under a name.
func (a *Agent) AddPromptTemplate(name, text string) { a.templates.Add(name, text) }

// Reset clears the conversation log, returns the state to idle and drops any
// pending tool call.
func (a *Agent) Reset() {
	a.state.Reset()
	a.log.Clear()
	a.lastCall = nil
}

// HandleTurn processes one user input end to end and always returns a
// response: any failure escaping the dispatch path is recovered here and
// converted into a fixed apologetic reply.
func (a *Agent) HandleTurn(ctx context.Context, input string) (resp Response) {
	defer func() {
		if rec := recover(); rec != nil {
			a.logger.Error("agent.turn.panic", "panic", fmt.Sprintf("%v", rec))
			resp = Response{Content: fallbackApology}
		}
	}()

	// The user's input is committed to the log before intent resolution so
	// handlers see it as conversation context.
	a.log.AppendMessage(core.RoleUser, input)

	state := a.state.State()
	decision := a.resolver.DetectIntent(ctx, input, a.log, state)

	a.logger.Debug("agent.turn.decision",
		"kind", string(decision.Kind),
		"tool", decision.ToolName,
		"confidence", decision.Confidence,
	)

	switch decision.Kind {
	case core.DecisionCallTool:
		return a.handleCallTool(ctx, decision)
	case core.DecisionContinueFlow:
		return a.handleContinueFlow(ctx, decision)
	case core.DecisionClarify:
		return a.handleClarify(decision)
	default:
		return a.handleChitChat(decision)
	}
}

func (a *Agent) handleCallTool(ctx context.Context, decision core.Decision) Response {
	if decision.ToolName == "" {
		a.state.SetState(core.AwaitingInput())
		content := a.render(TemplateClarify, a.promptVars(nil), fallbackClarify)
		a.log.AppendMessage(core.RoleAgent, content)
		return Response{Content: content, Intent: decision.Kind}
	}

	args := cloneArgs(decision.Parameters)
	a.lastCall = &pendingCall{toolName: decision.ToolName, args: args}

	return a.invoke(ctx, decision.Kind, decision.ToolName, args)
}

func (a *Agent) handleContinueFlow(ctx context.Context, decision core.Decision) Response {
	interrupted := a.state.InterruptedTool()
	if interrupted == "" {
		a.state.Reset()
		a.log.AppendMessage(core.RoleAgent, nothingToContinue)
		return Response{Content: nothingToContinue, Intent: decision.Kind}
	}

	merged := map[string]any{}
	if a.lastCall != nil && a.lastCall.toolName == interrupted {
		for k, v := range a.lastCall.args {
			merged[k] = v
		}
	}
	for k, v := range decision.Parameters { // newly supplied values win
		merged[k] = v
	}

	// The merged set becomes the new pending arguments regardless of how the
	// re-invocation turns out.
	a.lastCall = &pendingCall{toolName: interrupted, args: merged}

	return a.invoke(ctx, decision.Kind, interrupted, merged)
}

// invoke runs a tool and applies the shared success / missing-parameter /
// failure state transitions for both call_tool and continue_flow turns.
func (a *Agent) invoke(ctx context.Context, kind core.DecisionKind, toolName string, args map[string]any) Response {
	a.state.SetState(core.ExecutingTool())

	outcome := a.registry.Invoke(ctx, toolName, args)

	if outcome.Succeeded {
		a.state.Reset()
		a.log.AppendMessage(core.RoleSystem, fmt.Sprintf("tool %s output: %s", toolName, outcome.Text))
		return Response{Content: outcome.Text, Intent: kind, ToolName: toolName, ToolResult: outcome.Text}
	}

	if len(outcome.MissingParams) > 0 {
		param := outcome.MissingParams[0]
		a.state.SetState(core.WaitingFor(param))
		a.state.SetInterruptedTool(toolName)

		vars := a.promptVars(map[string]any{"param": param, "tool": toolName})
		content := a.render(TemplateMissingParam, vars,
			fmt.Sprintf("I need a bit more information. What should I use for %q?", param))
		a.log.AppendMessage(core.RoleAgent, content)
		return Response{Content: content, Intent: kind, ToolName: toolName}
	}

	// Execution failed for a reason other than missing parameters. The state
	// is forced back to idle so the next turn starts fresh.
	a.state.Reset()
	content := fmt.Sprintf("I couldn't complete that: %s", outcome.ErrorMessage)
	a.log.AppendMessage(core.RoleSystem, fmt.Sprintf("tool %s failed: %s", toolName, outcome.ErrorMessage))
	return Response{Content: content, Intent: kind, ToolName: toolName}
}

func (a *Agent) handleClarify(decision core.Decision) Response {
	a.state.SetState(core.AwaitingInput())
	content := a.render(TemplateClarify, a.promptVars(nil), fallbackClarify)
	a.log.AppendMessage(core.RoleAgent, content)
	return Response{Content: content, Intent: decision.Kind}
}

func (a *Agent) handleChitChat(decision core.Decision) Response {
	content := a.render(TemplateGreeting, a.promptVars(nil), fallbackGreeting)
	a.log.AppendMessage(core.RoleAgent, content)
	return Response{Content: content, Intent: decision.Kind}
}

// render resolves a named template falling back to a fixed default when the
// template was never registered.
func (a *Agent) render(name string, vars map[string]any, fallback string) string {
	text, err := a.templates.Render(name, vars)
	if err != nil {
		return fallback
	}
	return text
}

// promptVars returns the base template variables (agent identity) merged
// with any extras.
func (a *Agent) promptVars(extra map[string]any) map[string]any {
	vars := map[string]any{
		"name":        a.name,
		"version":     a.version,
		"description": a.description,
	}
	for k, v := range extra {
		vars[k] = v
	}
	return vars
}

func cloneArgs(args map[string]any) map[string]any {
	cloned := make(map[string]any, len(args))
	for k, v := range args {
		cloned[k] = v
	}
	return cloned
}
