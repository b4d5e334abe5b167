package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/convokit/conversation"
	"github.com/hupe1980/convokit/core"
	"github.com/hupe1980/convokit/tool"
)

func TestParseDecisionValid(t *testing.T) {
	raw := `{"kind":"call_tool","tool_name":"get_weather","parameters":{"city":"Berlin"},"confidence":0.92}`

	d, err := ParseDecision(raw)
	require.NoError(t, err)
	assert.Equal(t, core.DecisionCallTool, d.Kind)
	assert.Equal(t, "get_weather", d.ToolName)
	assert.Equal(t, map[string]any{"city": "Berlin"}, d.Parameters)
	assert.Equal(t, 0.92, d.Confidence)
}

func TestParseDecisionExtractsEmbeddedJSON(t *testing.T) {
	raw := "Sure, here is my verdict:\n```json\n{\"kind\":\"chit_chat\",\"confidence\":0.8}\n```"

	d, err := ParseDecision(raw)
	require.NoError(t, err)
	assert.Equal(t, core.DecisionChitChat, d.Kind)
	assert.Equal(t, 0.8, d.Confidence)
}

func TestParseDecisionClampsConfidence(t *testing.T) {
	d, err := ParseDecision(`{"kind":"clarify","confidence":1.7}`)
	require.NoError(t, err)
	assert.Equal(t, 1.0, d.Confidence)

	d, err = ParseDecision(`{"kind":"clarify","confidence":-0.2}`)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d.Confidence)
}

func TestParseDecisionRejectsUnknownKind(t *testing.T) {
	_, err := ParseDecision(`{"kind":"reboot","confidence":0.9}`)
	assert.Error(t, err)
}

func TestParseDecisionRejectsNonJSON(t *testing.T) {
	_, err := ParseDecision("I am not sure what you mean.")
	assert.Error(t, err)
}

func TestSystemPromptListsTools(t *testing.T) {
	prompt := SystemPrompt(Request{Tools: []ToolInfo{
		{Name: "get_weather", Description: "Get current weather"},
		{Name: "book_flight", Description: "Book a flight"},
	}})
	assert.Contains(t, prompt, "get_weather")
	assert.Contains(t, prompt, "book_flight")
	assert.Contains(t, prompt, "call_tool")
}

type fixedClassifier struct {
	req Request
}

func (c *fixedClassifier) Classify(_ context.Context, req Request) (*core.Decision, error) {
	c.req = req
	return &core.Decision{Kind: core.DecisionChitChat, Confidence: 0.75}, nil
}

func TestHandlerSuppliesToolsAndHistory(t *testing.T) {
	weather := tool.NewFunctionTool("get_weather", "Get weather", nil,
		func(context.Context, map[string]any) (string, error) { return "", nil })

	classifier := &fixedClassifier{}
	h := NewHandler(classifier, func() []tool.Tool { return []tool.Tool{weather} })

	log := conversation.NewLog()
	log.AppendMessage(core.RoleUser, "hi")

	d, err := h.Handle(context.Background(), "hi", log, core.Idle())
	require.NoError(t, err)
	assert.Equal(t, core.DecisionChitChat, d.Kind)

	require.Len(t, classifier.req.Tools, 1)
	assert.Equal(t, "get_weather", classifier.req.Tools[0].Name)
	require.Len(t, classifier.req.History, 1)
	assert.Equal(t, "hi", classifier.req.History[0].Content)
}
