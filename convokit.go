// Package convokit provides a turn-spanning conversational-agent
// orchestration core. Most applications interact with it by:
//  1. Creating an agent via New()
//  2. Registering tools (tool.Tool / tool.FunctionTool) and intent handlers
//  3. Feeding user inputs to HandleTurn, one at a time per instance
//
// When a tool invocation lacks a required parameter the agent suspends the
// call, asks for the value and consumes the next input as that parameter, so
// a single capability can span multiple turns without any caller-side state.
package convokit

import (
	"github.com/hupe1980/convokit/agent"
)

// Options re-exports the agent configuration for façade users.
type Options = agent.Options

// Response re-exports the per-turn result type.
type Response = agent.Response

// New constructs an orchestrator for one logical conversation. See
// agent.New for the validation rules.
func New(name, version string, optFns ...func(o *Options)) (*agent.Agent, error) {
	return agent.New(name, version, optFns...)
}
