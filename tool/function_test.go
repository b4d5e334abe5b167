package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/convokit/internal/util"
)

func TestFunctionToolMetadata(t *testing.T) {
	ft := NewFunctionTool("greet", "Say hello", nil, func(_ context.Context, _ map[string]any) (string, error) {
		return "hello", nil
	})
	assert.Equal(t, "greet", ft.Name())
	assert.Equal(t, "Say hello", ft.Description())
	assert.Nil(t, ft.Parameters())
}

func TestFunctionToolWrapsErrors(t *testing.T) {
	ft := NewFunctionTool("fail", "Fails", nil, func(_ context.Context, _ map[string]any) (string, error) {
		return "", errors.New("boom")
	})

	_, err := ft.Call(context.Background(), nil)
	assert.Error(t, err)
	toolErr, ok := err.(*ToolError)
	assert.True(t, ok)
	assert.Equal(t, "EXECUTION_ERROR", toolErr.Code)
	assert.Equal(t, "boom", toolErr.Message)
}

func TestFunctionToolForwardsToolErrors(t *testing.T) {
	custom := NewToolError("fail", "quota exceeded", "QUOTA")
	ft := NewFunctionTool("fail", "Fails", nil, func(_ context.Context, _ map[string]any) (string, error) {
		return "", custom
	})

	_, err := ft.Call(context.Background(), nil)
	assert.Same(t, custom, err)
}

type weatherArgs struct {
	City string `json:"city" description:"City to look up"`
	Unit string `json:"unit,omitempty" description:"Temperature unit"`
}

func TestFunctionToolFromStruct(t *testing.T) {
	ft := NewFunctionToolFromStruct("get_weather", "Get weather", weatherArgs{},
		func(_ context.Context, args map[string]any) (string, error) {
			city, _ := args["city"].(string)
			return "Sunny in " + city, nil
		})

	assert.Equal(t, []string{"city"}, util.RequiredNames(ft.Parameters()))

	text, err := ft.Call(context.Background(), map[string]any{"city": "Berlin"})
	assert.NoError(t, err)
	assert.Equal(t, "Sunny in Berlin", text)
}
