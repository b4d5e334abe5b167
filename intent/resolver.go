// Package intent implements confidence-ranked intent resolution. Registered
// handlers classify the latest input against the conversation log and turn
// state; while a tool call is suspended waiting for a parameter, a
// continuation decision pre-empts fresh classification entirely.
package intent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hupe1980/convokit/conversation"
	"github.com/hupe1980/convokit/core"
	"github.com/hupe1980/convokit/logging"
	"github.com/hupe1980/convokit/tool"
)

const (
	// DefaultMinConfidence is the threshold a handler result must meet to be
	// eligible for ranking.
	DefaultMinConfidence = 0.7
	// continuationConfidence is assigned to continuation decisions while the
	// orchestrator is waiting for a parameter, regardless of input content.
	continuationConfidence = 0.9
	// fallbackConfidence is carried by the default chit_chat decision. It
	// sits below the default threshold on purpose: resolution never fails,
	// it just returns the weakest possible verdict.
	fallbackConfidence = 0.5
)

// Handler classifies an input into a decision. Returning a nil decision
// means "does not apply". A handler may fail or panic; the resolver logs and
// skips it without aborting resolution for the remaining handlers.
type Handler interface {
	Handle(ctx context.Context, input string, log *conversation.Log, state core.State) (*core.Decision, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, input string, log *conversation.Log, state core.State) (*core.Decision, error)

// Handle calls fn.
func (fn HandlerFunc) Handle(ctx context.Context, input string, log *conversation.Log, state core.State) (*core.Decision, error) {
	return fn(ctx, input, log, state)
}

// ResolverOptions configure a Resolver.
type ResolverOptions struct {
	// MinConfidence is the eligibility threshold for handler results.
	MinConfidence float64
	// Logger receives skipped-handler diagnostics. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Resolver produces a ranked intent decision per turn. Handlers are
// evaluated sequentially in registration order; ties in confidence resolve
// to the earlier registered handler, never randomly.
type Resolver struct {
	handlers      []Handler
	minConfidence float64
	logger        logging.Logger
}

// NewResolver constructs a resolver with optional overrides.
func NewResolver(optFns ...func(o *ResolverOptions)) *Resolver {
	opts := ResolverOptions{
		MinConfidence: DefaultMinConfidence,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Resolver{minConfidence: opts.MinConfidence, logger: opts.Logger}
}

// RegisterHandler appends a handler to the evaluation order.
func (r *Resolver) RegisterHandler(h Handler) { r.handlers = append(r.handlers, h) }

// MinConfidence returns the configured eligibility threshold.
func (r *Resolver) MinConfidence() float64 { return r.minConfidence }

// DetectIntent resolves the decision for one turn. It never fails: when no
// handler result clears the threshold a chit_chat decision with
// below-threshold confidence is returned.
//
// While the state is waiting_for(p), the trimmed raw input is treated as the
// value for p and returned as a continue_flow decision before any handler
// runs, provided the fixed continuation confidence meets the threshold.
func (r *Resolver) DetectIntent(ctx context.Context, input string, log *conversation.Log, state core.State) core.Decision {
	if param, ok := waitingParam(state); ok {
		continuation := core.Decision{
			Kind:       core.DecisionContinueFlow,
			Parameters: map[string]any{param: strings.TrimSpace(input)},
			Confidence: continuationConfidence,
		}
		if continuation.Confidence >= r.minConfidence {
			return continuation
		}
	}

	var eligible []core.Decision
	for i, h := range r.handlers {
		decision, err := r.evaluate(ctx, h, input, log, state)
		if err != nil {
			r.logger.Warn("intent.handler.skipped", "handler", i, "error", err.Error())
			continue
		}
		if decision == nil {
			continue
		}
		if decision.Confidence >= r.minConfidence {
			eligible = append(eligible, *decision)
		}
	}

	if len(eligible) == 0 {
		return core.Decision{Kind: core.DecisionChitChat, Confidence: fallbackConfidence}
	}

	// Stable sort keeps registration order as the tie-break.
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Confidence > eligible[j].Confidence
	})

	return eligible[0]
}

// evaluate runs one handler converting panics into errors so a misbehaving
// handler cannot abort resolution.
func (r *Resolver) evaluate(ctx context.Context, h Handler, input string, log *conversation.Log, state core.State) (decision *core.Decision, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			decision = nil
			err = fmt.Errorf("handler panic: %v", rec)
		}
	}()
	return h.Handle(ctx, input, log, state)
}

func waitingParam(state core.State) (string, bool) {
	if state.Kind == core.StateWaitingFor {
		return state.Param, true
	}
	return "", false
}

// ToolMatch pairs a tool with its heuristic match confidence.
type ToolMatch struct {
	Tool       tool.Tool
	Confidence float64
}

// ToolMatches ranks tools against the input with a simple substring
// heuristic: 0.8 when the input contains the tool's name, 0.6 when it
// contains the tool's description, 0.1 floor otherwise; the best of the two
// signals wins. This is not semantic similarity and deliberately keeps the
// name signal stronger than the description signal.
func (r *Resolver) ToolMatches(input string, tools []tool.Tool) []ToolMatch {
	return rankTools(input, tools)
}

func rankTools(input string, tools []tool.Tool) []ToolMatch {
	lowered := strings.ToLower(input)

	matches := make([]ToolMatch, 0, len(tools))
	for _, t := range tools {
		nameScore := 0.1
		if strings.Contains(lowered, strings.ToLower(t.Name())) {
			nameScore = 0.8
		}
		descScore := 0.1
		if t.Description() != "" && strings.Contains(lowered, strings.ToLower(t.Description())) {
			descScore = 0.6
		}
		confidence := nameScore
		if descScore > confidence {
			confidence = descScore
		}
		matches = append(matches, ToolMatch{Tool: t, Confidence: confidence})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})

	return matches
}
