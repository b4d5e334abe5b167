// Package model defines the optional model-backed intent classification
// collaborators. A Classifier asks an LLM to route an input to one of the
// orchestrator's decision kinds; the Handler adapter plugs any Classifier
// into the resolver's handler chain. The orchestration core never depends on
// this package.
package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/hupe1980/convokit/conversation"
	"github.com/hupe1980/convokit/core"
	"github.com/hupe1980/convokit/tool"
)

// ToolInfo is the classifier-facing view of a registered tool.
type ToolInfo struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Request carries everything a classifier may consult for one turn.
type Request struct {
	Input   string
	History []core.Turn
	State   core.State
	Tools   []ToolInfo
}

// Classifier produces an intent decision for an input, or nil when it
// abstains.
type Classifier interface {
	Classify(ctx context.Context, req Request) (*core.Decision, error)
}

// Handler adapts a Classifier to the resolver's handler interface, sourcing
// the tool inventory from a provider (typically Agent.Tools).
type Handler struct {
	classifier Classifier
	tools      func() []tool.Tool
}

// NewHandler constructs a Handler over a classifier and tools provider.
func NewHandler(c Classifier, tools func() []tool.Tool) *Handler {
	return &Handler{classifier: c, tools: tools}
}

// Handle implements intent.Handler.
func (h *Handler) Handle(ctx context.Context, input string, log *conversation.Log, state core.State) (*core.Decision, error) {
	req := Request{Input: input, State: state}
	if log != nil {
		req.History = log.Turns()
	}
	if h.tools != nil {
		for _, t := range h.tools() {
			req.Tools = append(req.Tools, ToolInfo{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			})
		}
	}
	return h.classifier.Classify(ctx, req)
}

// SystemPrompt renders the classification instruction shared by the SDK
// backed classifiers.
func SystemPrompt(req Request) string {
	var sb strings.Builder
	sb.WriteString("You classify a user message for a conversational agent.\n")
	sb.WriteString("Reply with a single JSON object and nothing else:\n")
	sb.WriteString(`{"kind":"call_tool|clarify|chit_chat","tool_name":"","parameters":{},"confidence":0.0}`)
	sb.WriteString("\nUse call_tool only for one of these tools:\n")
	for _, t := range req.Tools {
		fmt.Fprintf(&sb, "- %s: %s\n", t.Name, t.Description)
	}
	sb.WriteString("Set confidence between 0 and 1.\n")
	return sb.String()
}

// ParseDecision extracts a decision from raw model output. The first JSON
// object found in the text is parsed; unknown kinds abstain with an error so
// the resolver can skip the handler.
func ParseDecision(raw string) (*core.Decision, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	doc := gjson.Parse(raw[start : end+1])

	kind := core.DecisionKind(doc.Get("kind").String())
	switch kind {
	case core.DecisionCallTool, core.DecisionContinueFlow, core.DecisionClarify, core.DecisionChitChat:
	default:
		return nil, fmt.Errorf("model returned unknown decision kind %q", kind)
	}

	decision := &core.Decision{
		Kind:       kind,
		ToolName:   doc.Get("tool_name").String(),
		Confidence: doc.Get("confidence").Float(),
	}

	if params := doc.Get("parameters"); params.IsObject() {
		decision.Parameters = map[string]any{}
		params.ForEach(func(key, value gjson.Result) bool {
			decision.Parameters[key.String()] = value.Value()
			return true
		})
	}

	if decision.Confidence < 0 {
		decision.Confidence = 0
	}
	if decision.Confidence > 1 {
		decision.Confidence = 1
	}

	return decision, nil
}
