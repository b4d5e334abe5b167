package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/convokit/internal/util"
)

// -------------------- Schema Helper Tests --------------------

type sampleSchema struct {
	A string `json:"a" description:"Field A"`
	B *int   `json:"b" description:"Optional pointer field"`
	C int    `json:"c,omitempty" description:"Omit empty field"`
}

func TestCreateSchema(t *testing.T) {
	schema := util.CreateSchema(sampleSchema{})
	props, ok := schema["properties"].(map[string]any)
	assert.True(t, ok)
	assert.Contains(t, props, "a")
	assert.Contains(t, props, "b")
	assert.Contains(t, props, "c")
	// Required only includes non-pointer, non-omitempty exported fields
	req, _ := schema["required"].([]string)
	assert.ElementsMatch(t, []string{"a"}, req)
}

func TestMissingParametersPreservesSchemaOrder(t *testing.T) {
	schema := map[string]any{
		"type":     "object",
		"required": []string{"city", "unit", "day"},
	}

	missing := util.MissingParameters(map[string]any{"unit": "c"}, schema)
	assert.Equal(t, []string{"city", "day"}, missing)

	// JSON decoded schemas carry []any
	schema["required"] = []any{"city", "unit"}
	missing = util.MissingParameters(map[string]any{}, schema)
	assert.Equal(t, []string{"city", "unit"}, missing)
}

// -------------------- Registry Tests --------------------

func echoTool(name string) Tool {
	return NewFunctionTool(name, "Echoes its input", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"text": map[string]any{"type": "string"},
		},
		"required": []string{"text"},
	}, func(_ context.Context, args map[string]any) (string, error) {
		text, _ := args["text"].(string)
		return text, nil
	})
}

func TestRegistryInvokeSuccess(t *testing.T) {
	reg := NewRegistry()
	reg.Register(echoTool("echo"))

	outcome := reg.Invoke(context.Background(), "echo", map[string]any{"text": "hi"})
	assert.True(t, outcome.Succeeded)
	assert.Equal(t, "hi", outcome.Text)
	assert.Empty(t, outcome.MissingParams)
}

func TestRegistryInvokeUnknownTool(t *testing.T) {
	reg := NewRegistry()

	outcome := reg.Invoke(context.Background(), "nope", nil)
	assert.False(t, outcome.Succeeded)
	assert.Equal(t, "tool nope not found", outcome.ErrorMessage)
}

func TestRegistryInvokeMissingParamsReturnsFullOrderedList(t *testing.T) {
	reg := NewRegistry()
	reg.Register(NewFunctionTool("book_flight", "Book a flight", map[string]any{
		"type":     "object",
		"required": []string{"origin", "destination", "date"},
	}, func(_ context.Context, _ map[string]any) (string, error) {
		return "booked", nil
	}))

	outcome := reg.Invoke(context.Background(), "book_flight", map[string]any{"destination": "TXL"})
	assert.False(t, outcome.Succeeded)
	assert.Equal(t, "missing required parameters", outcome.ErrorMessage)
	assert.Equal(t, []string{"origin", "date"}, outcome.MissingParams)
}

func TestRegistryInvokeExecutionError(t *testing.T) {
	reg := NewRegistry()
	reg.Register(NewFunctionTool("fail", "Fails", nil, func(_ context.Context, _ map[string]any) (string, error) {
		return "", errors.New("boom")
	}))

	outcome := reg.Invoke(context.Background(), "fail", nil)
	assert.False(t, outcome.Succeeded)
	assert.Contains(t, outcome.ErrorMessage, "boom")
	assert.Empty(t, outcome.MissingParams)
}

type panicTool struct{ payload any }

func (p *panicTool) Name() string               { return "panic_tool" }
func (p *panicTool) Description() string        { return "Panics on call" }
func (p *panicTool) Parameters() map[string]any { return nil }
func (p *panicTool) Call(context.Context, map[string]any) (string, error) {
	panic(p.payload)
}

func TestRegistryInvokeRecoversPanics(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&panicTool{payload: "exploded"})

	outcome := reg.Invoke(context.Background(), "panic_tool", nil)
	assert.False(t, outcome.Succeeded)
	assert.Contains(t, outcome.ErrorMessage, "exploded")
}

func TestRegistryInvokePanicWithoutMessage(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&panicTool{payload: struct{}{}})

	outcome := reg.Invoke(context.Background(), "panic_tool", nil)
	assert.False(t, outcome.Succeeded)
	assert.Contains(t, outcome.ErrorMessage, "unknown error")
}

func TestRegistryListPreservesRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterAll(echoTool("alpha"), echoTool("beta"), echoTool("gamma"))

	var names []string
	for _, tl := range reg.List() {
		names = append(names, tl.Name())
	}
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, names)

	reg.Unregister("beta")
	names = names[:0]
	for _, tl := range reg.List() {
		names = append(names, tl.Name())
	}
	assert.Equal(t, []string{"alpha", "gamma"}, names)
}

func TestRegistrySchema(t *testing.T) {
	reg := NewRegistry()
	reg.Register(echoTool("echo"))

	schema := reg.Schema("echo")
	require.NotNil(t, schema)
	assert.Equal(t, []string{"text"}, util.RequiredNames(schema))

	assert.Nil(t, reg.Schema("missing"))
}

// -------------------- ToolError Formatting --------------------

func TestToolErrorFormatting(t *testing.T) {
	err := NewToolError("demo", "something failed", "E123")
	assert.Contains(t, err.Error(), "E123")
	assert.Contains(t, err.Error(), "demo")

	missing := &MissingParametersError{Tool: "demo", Missing: []string{"a", "b"}}
	assert.Equal(t, "missing required parameters", missing.Error())

	notFound := &NotFoundError{Tool: "demo"}
	assert.Equal(t, "tool demo not found", notFound.Error())
}
